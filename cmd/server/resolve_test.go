package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"views/default.view": "default",
		"views/demo.view":    "demo",
		"views/error.view":   "error",
		"sql/create.sql":     "CREATE TABLE Employee (id INTEGER, name TEXT)",
		"sql/insert.sql":     "INSERT INTO Employee VALUES ({{id}}, '{{name}}')",
		"sql/select.sql":     "SELECT id, name FROM Employee WHERE id = {{id}}",
		"db.properties":      "url=sqlite:" + filepath.Join(dir, "app.db") + "\n",
		"setting.yaml": `
- identifier: setup
  view: ` + filepath.Join(dir, "views/demo.view") + `
  sql: ` + filepath.Join(dir, "sql/create.sql") + `
  errorview: ` + filepath.Join(dir, "views/error.view") + `
- identifier: demo_post
  view: ` + filepath.Join(dir, "views/demo.view") + `
  sql: ` + filepath.Join(dir, "sql/insert.sql") + `
  errorview: ` + filepath.Join(dir, "views/error.view") + `
- identifier: demo_get
  view: ` + filepath.Join(dir, "views/demo.view") + `
  sql: ` + filepath.Join(dir, "sql/select.sql") + `
  errorview: ` + filepath.Join(dir, "views/error.view") + `
- identifier: default
  view: ` + filepath.Join(dir, "views/default.view") + `
  errorview: ` + filepath.Join(dir, "views/missing.view") + `
`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func runResolve(t *testing.T, dir string, args ...string) (resolveOutput, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--setting-dir", dir, "--setting-file", "setting.yaml", "resolve"}, args...))

	err := root.Execute()

	var result resolveOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &result), out.String())
	return result, err
}

func TestResolveCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := writeSettings(t)

	out, err := runResolve(t, dir, "setup", "--write")
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Outcome)

	out, err = runResolve(t, dir, "demo_post", "--write", "--param", "id=2", "--param", "name=yamada")
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Outcome)
	require.NotNil(t, out.View)
	assert.Equal(t, "/demo.view", out.View.View)

	out, err = runResolve(t, dir, "demo_get", "--param", "id=2")
	require.NoError(t, err)
	require.NotNil(t, out.View)
	model, ok := out.View.Model()
	require.True(t, ok)
	require.Len(t, model, 1)
	name, _ := model[0].Get("name")
	assert.Equal(t, "yamada", name)
}

func TestResolveCommandFatal(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := writeSettings(t)

	// The default entry points at an error view that does not exist
	out, err := runResolve(t, dir, "missing_id")
	require.Error(t, err)
	assert.Equal(t, "fatal", out.Outcome)
	assert.Nil(t, out.View)
	assert.Contains(t, out.Error, "error view file path not found")
}

func TestParseParamFlags(t *testing.T) {
	params, err := parseParamFlags([]string{"id=2", "name=a=b", "id=3", "empty="})
	require.NoError(t, err)
	assert.Equal(t, "2", params["id"])
	assert.Equal(t, "a=b", params["name"])
	assert.Equal(t, "", params["empty"])

	_, err = parseParamFlags([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseParamFlags([]string{"=x"})
	assert.Error(t, err)
}
