package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultRowSetKeepsFirst(t *testing.T) {
	row := ResultRow{}.Set("id", "1").Set("name", "tanaka").Set("id", "2")

	assert.Equal(t, []string{"id", "name"}, row.Columns())
	value, ok := row.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	_, ok = row.Get("email")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"id": "1", "name": "tanaka"}, row.Map())
}

func TestResultRowJSONKeepsColumnOrder(t *testing.T) {
	row := ResultRow{{Name: "z", Value: "1"}, {Name: "a", Value: ""}, {Name: "m", Value: "\"q\""}}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":"","m":"\"q\""}`, string(data))

	var decoded ResultRow
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, row, decoded)
}

func TestResultRowUnmarshalRejectsNonObjects(t *testing.T) {
	var row ResultRow
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &row))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &row))
}

func TestViewResultJSON(t *testing.T) {
	view := ViewResult{View: "/demo.view"}
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Equal(t, `{"view":"/demo.view"}`, string(data))

	view.Data = map[string]ResultSet{ModelKey: {{{Name: "id", Value: "2"}}}}
	data, err = json.Marshal(view)
	require.NoError(t, err)
	assert.Equal(t, `{"view":"/demo.view","data":{"model":[{"id":"2"}]}}`, string(data))

	var decoded ViewResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, view, decoded)
}
