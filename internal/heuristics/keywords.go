package heuristics

import "github.com/linkdeck/linkdeck/internal/domain"

// CategoryKeywords binds one category to its matching keywords.
// Slice order is the tie-break order: on equal scores the first
// declared category wins.
type CategoryKeywords struct {
	Category domain.Category
	Keywords []string
}

// TagKeywords binds one suggested tag to its trigger keywords.
// Slice order is the order tags are returned in.
type TagKeywords struct {
	Tag      string
	Keywords []string
}

// DefaultCategoryTable returns the built-in categorization table.
func DefaultCategoryTable() []CategoryKeywords {
	return []CategoryKeywords{
		{domain.CategorySocial, []string{
			"twitter", "facebook", "instagram", "linkedin", "reddit",
			"tiktok", "snapchat", "pinterest", "social", "community",
		}},
		{domain.CategoryWork, []string{
			"github", "gitlab", "jira", "slack", "teams", "notion",
			"asana", "trello", "confluence", "workspace", "project",
			"meeting", "document", "spreadsheet",
		}},
		{domain.CategoryTools, []string{
			"tool", "generator", "converter", "calculator", "editor",
			"utility", "app", "extension", "plugin", "api", "dev", "code",
		}},
		{domain.CategoryPersonal, []string{
			"blog", "recipe", "fitness", "health", "shopping", "amazon",
			"ebay", "personal", "hobby", "game",
		}},
	}
}

// DefaultTagTable returns the built-in tag suggestion table.
func DefaultTagTable() []TagKeywords {
	return []TagKeywords{
		{"javascript", []string{"javascript", "js", "node", "react", "vue", "angular"}},
		{"python", []string{"python", "django", "flask", "pandas"}},
		{"design", []string{"design", "ui", "ux", "figma", "sketch"}},
		{"data", []string{"data", "analytics", "sql", "database"}},
		{"ai", []string{"ai", "ml", "machine-learning", "neural", "gpt"}},
		{"tutorial", []string{"tutorial", "guide", "how-to", "learn"}},
		{"documentation", []string{"docs", "documentation", "api", "reference"}},
		{"video", []string{"youtube", "video", "watch", "stream"}},
		{"article", []string{"article", "blog", "post", "read"}},
		{"resource", []string{"resource", "collection", "awesome"}},
		{"important", []string{"important", "urgent", "critical"}},
		{"reference", []string{"reference", "cheatsheet", "quick"}},
	}
}
