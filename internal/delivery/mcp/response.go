package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// TextContent represents a text content item in a response
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the tool result format returned to MCP clients
type Response struct {
	Content  []TextContent          `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// NewResponse creates a new empty Response
func NewResponse() *Response {
	return &Response{
		Content: make([]TextContent, 0),
	}
}

// WithText adds a text content item to the response
func (r *Response) WithText(text string) *Response {
	r.Content = append(r.Content, TextContent{
		Type: "text",
		Text: text,
	})
	return r
}

// WithMetadata adds metadata to the response
func (r *Response) WithMetadata(key string, value interface{}) *Response {
	if r.Metadata == nil {
		r.Metadata = make(map[string]interface{})
	}
	r.Metadata[key] = value
	return r
}

// FromString creates a response from a string
func FromString(text string) *Response {
	return NewResponse().WithText(text)
}

// FromOutcome renders a non-fatal outcome as a response. The view result is
// the JSON text content; the outcome kind and view name go into metadata.
func FromOutcome(outcome domain.Outcome) (*Response, error) {
	body, err := json.Marshal(outcome.View)
	if err != nil {
		return nil, fmt.Errorf("failed to encode view result: %w", err)
	}

	resp := FromString(string(body)).
		WithMetadata("outcome", outcome.Kind.String()).
		WithMetadata("view", outcome.View.View)
	if outcome.Kind == domain.OutcomeErrorView && outcome.Err != nil {
		resp.WithMetadata("error", outcome.Err.Error())
	}
	return resp, nil
}

// FormatResponse converts any handler result into a Response
func FormatResponse(response interface{}, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}

	switch v := response.(type) {
	case nil:
		return NewResponse(), nil
	case *Response:
		return v, nil
	case string:
		if v == "" {
			return NewResponse(), nil
		}
		return FromString(v), nil
	default:
		body, err := json.Marshal(v)
		if err != nil {
			return FromString(fmt.Sprintf("%v", v)), nil
		}
		return FromString(string(body)), nil
	}
}
