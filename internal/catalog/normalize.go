package catalog

import (
	"sort"
	"strings"

	pkgerrors "github.com/angelmondragon/jewelcatalog/pkg/errors"
)

// optional trims v and maps blank text to nil.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// cleanNames trims names and drops blanks and case-insensitive duplicates.
func cleanNames(names []string) []string {
	if names == nil {
		return nil
	}
	out := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

func requireFields(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	details := make(map[string]string, len(missing))
	for _, name := range missing {
		details[name] = "is required"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields: "+strings.Join(missing, ", ")).
		WithDetails(details)
}

func validationError(field, problem string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, field+" "+problem).
		WithDetails(map[string]string{field: problem})
}
