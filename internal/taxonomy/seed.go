package taxonomy

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"carbex/internal/domain"
)

//go:embed categories.yaml
var categoriesYAML []byte

type catalogFile struct {
	Categories []catalogEntry `yaml:"categories"`
}

type catalogEntry struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Scope       int    `yaml:"scope"`
	GHGCategory *int   `yaml:"ghg_category"`
}

// DefaultCategories parses the embedded category catalog.
func DefaultCategories() ([]domain.Category, error) {
	return ParseCategories(categoriesYAML)
}

// ParseCategories decodes a YAML category catalog and validates each entry.
func ParseCategories(data []byte) ([]domain.Category, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("taxonomy.ParseCategories: %w", err)
	}

	seen := make(map[string]bool, len(file.Categories))
	out := make([]domain.Category, 0, len(file.Categories))
	for _, e := range file.Categories {
		if e.Code == "" || e.Name == "" {
			return nil, fmt.Errorf("taxonomy.ParseCategories: entry missing code or name")
		}
		if e.Scope < 1 || e.Scope > 3 {
			return nil, fmt.Errorf("taxonomy.ParseCategories: category %s: %w", e.Code, domain.ErrInvalidScope)
		}
		if seen[e.Code] {
			return nil, fmt.Errorf("taxonomy.ParseCategories: duplicate code %s", e.Code)
		}
		seen[e.Code] = true
		out = append(out, domain.Category{
			Code:        e.Code,
			Name:        e.Name,
			Scope:       e.Scope,
			GHGCategory: e.GHGCategory,
		})
	}
	return out, nil
}
