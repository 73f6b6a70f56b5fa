package dbtools

import (
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches {{name}} tokens in a SQL template
var placeholderPattern = regexp.MustCompile(`\{\{([^{}]+)\}\}`)

// Bind replaces every {{name}} in template with params[name].
//
// Placeholders without a matching parameter are left as they are, and values
// are inserted verbatim with no SQL escaping. Templates are author-controlled,
// but parameter values come from the request: this is textual interpolation,
// not a prepared statement. Substitution is a single pass, so a value that
// itself looks like a placeholder is not expanded again.
func Bind(template string, params map[string]string) string {
	if len(params) == 0 {
		return template
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{{"+name+"}}", params[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Placeholders returns the distinct placeholder names of template in order of appearance
func Placeholders(template string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Unresolved returns the placeholder names of template that params does not cover
func Unresolved(template string, params map[string]string) []string {
	var missing []string
	for _, name := range Placeholders(template) {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
