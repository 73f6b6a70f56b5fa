package usecase

import (
	"strings"

	"github.com/FreePeak/db-view-server/internal/domain"
)

// Assemble builds the view result for viewPath. The view name is "/" followed
// by the last path element, with both '/' and '\' treated as separators. Rows
// are attached under the model key only when there is at least one.
func Assemble(viewPath string, rows domain.ResultSet) domain.ViewResult {
	result := domain.ViewResult{View: "/" + baseName(viewPath)}
	if len(rows) > 0 {
		result.Data = map[string]domain.ResultSet{domain.ModelKey: rows}
	}
	return result
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
