package rest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/FreePeak/db-view-server/internal/domain"
	"github.com/FreePeak/db-view-server/internal/logger"
)

// maxBodySize bounds the form body of a POST request
const maxBodySize = 1 << 20

// Handler serves GET and POST requests for configured identifiers
type Handler struct {
	resolver        domain.Resolver
	renderer        Renderer
	prefix          string
	systemErrorView string
}

// NewHandler creates a new handler. prefix is the route prefix in front of
// the identifier; systemErrorView is rendered when a request fails fatally.
func NewHandler(resolver domain.Resolver, renderer Renderer, prefix, systemErrorView string) *Handler {
	if renderer == nil {
		renderer = NewJSONRenderer()
	}
	return &Handler{
		resolver:        resolver,
		renderer:        renderer,
		prefix:          "/" + strings.Trim(prefix, "/"),
		systemErrorView: systemErrorView,
	}
}

// Routes returns a mux with the identifier routes registered
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	pattern := strings.TrimSuffix(h.prefix, "/") + "/{identifier}"
	mux.HandleFunc("GET "+pattern, h.handleGet)
	mux.HandleFunc("POST "+pattern, h.handlePost)
	return mux
}

// handleGet resolves in read mode with the first value of each query parameter
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")
	logger.RequestLog(r.Method, r.URL.String(), identifier, "")

	h.resolve(r.Context(), w, domain.Request{
		Identifier: identifier,
		Params:     firstValues(r.URL.Query()),
		Mode:       domain.Read,
	})
}

// handlePost resolves in write mode with the form-encoded body as parameters
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	identifier := r.PathValue("identifier")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		logger.Warn("Failed to read request body: %v", err)
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	logger.RequestLog(r.Method, r.URL.String(), identifier, string(body))

	values, err := url.ParseQuery(strings.TrimSpace(string(body)))
	if err != nil {
		logger.Warn("Malformed request body: %v", err)
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	h.resolve(r.Context(), w, domain.Request{
		Identifier: identifier,
		Params:     firstValues(values),
		Mode:       domain.Write,
	})
}

func (h *Handler) resolve(ctx context.Context, w http.ResponseWriter, req domain.Request) {
	outcome := h.resolver.Resolve(ctx, req)

	status := http.StatusOK
	view := outcome.View
	if outcome.Kind == domain.OutcomeFatal {
		status = http.StatusInternalServerError
		view = domain.ViewResult{View: h.systemErrorView}
		logger.Error("Request for %s failed: %v", req.Identifier, outcome.Err)
	}

	if err := h.renderer.Render(w, status, view); err != nil {
		logger.Error("Failed to render %s: %v", view.View, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	logger.ResponseLog(status, req.Identifier, view.View)
}

// firstValues keeps the first value of every key
func firstValues(values url.Values) domain.ParameterMap {
	params := make(domain.ParameterMap, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}
