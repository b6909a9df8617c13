package keywords

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of a keywords.yaml file.
type Loader struct {
	filePath string
}

// NewLoader creates a new keywords loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the keywords file.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse keywords yaml: %w", err)
	}

	if len(config.Categories) == 0 && len(config.Tags) == 0 {
		return nil, fmt.Errorf("keywords file %s defines no categories or tags", l.filePath)
	}

	return &config, nil
}
