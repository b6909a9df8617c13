package keywords

import (
	"fmt"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/heuristics"
)

// Mapper converts a parsed keywords Config into heuristics tables.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCategories converts category entries to the heuristics table,
// preserving file order. Unknown category names are rejected so a typo
// in the file fails loudly instead of silently never matching.
func (m *Mapper) MapCategories(config *Config) ([]heuristics.CategoryKeywords, error) {
	if len(config.Categories) == 0 {
		return nil, nil
	}

	table := make([]heuristics.CategoryKeywords, 0, len(config.Categories))
	for _, entry := range config.Categories {
		category := domain.Category(strings.ToLower(strings.TrimSpace(entry.Category)))
		if !domain.ValidCategory(category) || category == domain.CategoryOther {
			return nil, fmt.Errorf("unknown category %q in keywords file", entry.Category)
		}
		table = append(table, heuristics.CategoryKeywords{
			Category: category,
			Keywords: lowercaseAll(entry.Keywords),
		})
	}

	return table, nil
}

// MapTags converts tag entries to the heuristics table, preserving
// file order.
func (m *Mapper) MapTags(config *Config) ([]heuristics.TagKeywords, error) {
	if len(config.Tags) == 0 {
		return nil, nil
	}

	table := make([]heuristics.TagKeywords, 0, len(config.Tags))
	for _, entry := range config.Tags {
		tag := strings.ToLower(strings.TrimSpace(entry.Tag))
		if tag == "" {
			return nil, fmt.Errorf("empty tag name in keywords file")
		}
		table = append(table, heuristics.TagKeywords{
			Tag:      tag,
			Keywords: lowercaseAll(entry.Keywords),
		})
	}

	return table, nil
}

func lowercaseAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
