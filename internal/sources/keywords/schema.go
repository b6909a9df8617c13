package keywords

// Config represents the top-level structure of a keywords.yaml file.
// Entry order matters: category order is the tie-break order and tag
// order is the suggestion order, so both are sequences, not maps.
type Config struct {
	Categories []CategoryEntry `yaml:"categories"`
	Tags       []TagEntry      `yaml:"tags"`
}

// CategoryEntry binds one category name to its keywords.
type CategoryEntry struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// TagEntry binds one tag name to its trigger keywords.
type TagEntry struct {
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}
