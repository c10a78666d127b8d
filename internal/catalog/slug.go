package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxSlugAttempts = 1000

// TitleName trims and title-cases a category or subcategory name.
func TitleName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// uniqueSlug slugifies name and appends -1, -2, ... until taken reports false.
func uniqueSlug(ctx context.Context, name string, maxLen int, taken func(context.Context, string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = "item"
	}
	if maxLen > 0 && len(base) > maxLen {
		base = strings.Trim(base[:maxLen], "-")
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		suffix := fmt.Sprintf("-%d", i)
		trimmed := base
		if maxLen > 0 && len(trimmed)+len(suffix) > maxLen {
			trimmed = base[:maxLen-len(suffix)]
		}
		candidate = trimmed + suffix
	}
	return "", fmt.Errorf("no free slug for %q", name)
}
