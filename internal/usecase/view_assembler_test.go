package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FreePeak/db-view-server/internal/domain"
)

func TestAssembleViewName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"demo.view", "/demo.view"},
		{"views/demo.view", "/demo.view"},
		{"/srv/app/views/demo.view", "/demo.view"},
		{`C:\app\views\error.view`, "/error.view"},
		{`views\mixed/deep\page.html`, "/page.html"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Assemble(tt.path, nil).View)
		})
	}
}

func TestAssembleData(t *testing.T) {
	rows := domain.ResultSet{{{Name: "id", Value: "1"}}}

	withRows := Assemble("views/demo.view", rows)
	model, ok := withRows.Model()
	assert.True(t, ok)
	assert.Equal(t, rows, model)

	empty := Assemble("views/demo.view", domain.ResultSet{})
	_, ok = empty.Model()
	assert.False(t, ok)
	assert.Nil(t, empty.Data)

	assert.Nil(t, Assemble("views/demo.view", nil).Data)
}
