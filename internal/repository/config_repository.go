package repository

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/pkg/logger"
)

// Document formats understood by ConfigRepository
const (
	FormatXML  = "xml"
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

// ConfigRepository implements domain.ConfigRepository on configuration files.
// The document is parsed again on every lookup.
type ConfigRepository struct{}

// NewConfigRepository creates a new configuration repository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

// Lookup finds the first group whose identifier equals identifier
func (r *ConfigRepository) Lookup(ctx context.Context, document, identifier string) (domain.ConfigEntry, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ConfigEntry{}, false, err
	}

	groups, err := r.Parse(document)
	if err != nil {
		return domain.ConfigEntry{}, false, err
	}

	for _, group := range groups {
		if group[domain.FieldIdentifier] == identifier {
			return domain.EntryFromFields(group), true, nil
		}
	}
	return domain.ConfigEntry{}, false, nil
}

// Parse reads document and returns the fields of each group in document order
func (r *ConfigRepository) Parse(document string) ([]map[string]string, error) {
	data, err := os.ReadFile(document)
	if err != nil {
		return nil, &domain.ConfigurationError{Document: document, Msg: "failed to read configuration document", Err: err}
	}

	format := FormatFor(document)
	var groups []map[string]string
	switch format {
	case FormatYAML:
		groups, err = parseYAML(data)
	case FormatHCL:
		groups, err = parseHCL(data, document)
	default:
		groups, err = parseXML(data)
	}
	if err != nil {
		return nil, &domain.ConfigurationError{Document: document, Msg: "malformed configuration document", Err: err}
	}

	logger.Debug("Parsed %d groups from %s document %s", len(groups), format, document)
	return groups, nil
}

// FormatFor selects the document format from the file extension. Anything
// other than YAML or HCL is read as XML.
func FormatFor(document string) string {
	switch strings.ToLower(filepath.Ext(document)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	default:
		return FormatXML
	}
}

type xmlDocument struct {
	Groups []xmlGroup `xml:",any"`
}

type xmlGroup struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func parseXML(data []byte) ([]map[string]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	var doc xmlDocument
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	// Only comments and whitespace may follow the root element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, fmt.Errorf("unexpected element <%s> after root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("unexpected text after root element")
			}
		}
	}

	groups := make([]map[string]string, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		fields := make(map[string]string, len(g.Fields))
		for _, f := range g.Fields {
			if _, seen := fields[f.XMLName.Local]; seen {
				continue
			}
			fields[f.XMLName.Local] = strings.TrimSpace(f.Value)
		}
		groups = append(groups, fields)
	}
	return groups, nil
}

func parseYAML(data []byte) ([]map[string]string, error) {
	var raw []map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	groups := make([]map[string]string, 0, len(raw))
	for _, g := range raw {
		fields := make(map[string]string, len(g))
		for k, v := range g {
			fields[k] = strings.TrimSpace(v)
		}
		groups = append(groups, fields)
	}
	return groups, nil
}

// hclRoot decodes every entry block of an HCL document
type hclRoot struct {
	Entries []*hclEntry `hcl:"entry,block"`
	Remain  hcl.Body    `hcl:",remain"`
}

type hclEntry struct {
	Identifier string `hcl:"identifier"`
	View       string `hcl:"view,optional"`
	SQL        string `hcl:"sql,optional"`
	ErrorView  string `hcl:"errorview,optional"`
}

func parseHCL(data []byte, filename string) ([]map[string]string, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var root hclRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	groups := make([]map[string]string, 0, len(root.Entries))
	for _, e := range root.Entries {
		groups = append(groups, map[string]string{
			domain.FieldIdentifier: strings.TrimSpace(e.Identifier),
			domain.FieldView:       strings.TrimSpace(e.View),
			domain.FieldSQL:        strings.TrimSpace(e.SQL),
			domain.FieldErrorView:  strings.TrimSpace(e.ErrorView),
		})
	}
	return groups, nil
}
