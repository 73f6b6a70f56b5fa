package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// Renderer writes a view result to the client
type Renderer interface {
	Render(w http.ResponseWriter, status int, view domain.ViewResult) error
}

// JSONRenderer writes the view result as a JSON document
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes view as JSON
func (r *JSONRenderer) Render(w http.ResponseWriter, status int, view domain.ViewResult) error {
	body, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode view result: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// TemplateRenderer executes the HTML template named by the view, resolved
// under a template root directory. Templates are parsed on every render.
type TemplateRenderer struct {
	root string
}

// NewTemplateRenderer creates a renderer reading templates from root
func NewTemplateRenderer(root string) *TemplateRenderer {
	return &TemplateRenderer{root: root}
}

// Render executes the template for view. Each data entry is exposed to the
// template as a list of column-name to value maps.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, view domain.ViewResult) error {
	path, err := r.templatePath(view.View)
	if err != nil {
		return err
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", path, err)
	}

	data := make(map[string][]map[string]string, len(view.Data))
	for key, rows := range view.Data {
		maps := make([]map[string]string, len(rows))
		for i, row := range rows {
			maps[i] = row.Map()
		}
		data[key] = maps
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", path, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}

// templatePath maps a view name such as "/demo.html" onto the template root
func (r *TemplateRenderer) templatePath(view string) (string, error) {
	name := strings.TrimPrefix(view, "/")
	if name == "" || name != filepath.Base(name) || name == ".." {
		return "", fmt.Errorf("invalid view name %q", view)
	}
	return filepath.Join(r.root, name), nil
}
