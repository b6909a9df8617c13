package heuristics

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
)

const (
	// Keyword match weights by where the keyword appears.
	ScoreHostnameMatch = 3
	ScorePathMatch     = 2
	ScoreTitleMatch    = 1

	// MaxSuggestedTags caps the number of suggested tags.
	MaxSuggestedTags = 5
)

// Engine runs pure, cache-backed heuristics over link metadata.
// All methods are safe for concurrent use.
type Engine struct {
	categories []CategoryKeywords
	tags       []TagKeywords
	cache      *memoCache
}

// NewEngine creates an engine with the given keyword tables.
// Nil tables fall back to the built-in ones.
func NewEngine(categories []CategoryKeywords, tags []TagKeywords) *Engine {
	if categories == nil {
		categories = DefaultCategoryTable()
	}
	if tags == nil {
		tags = DefaultTagTable()
	}
	return &Engine{
		categories: categories,
		tags:       tags,
		cache:      newMemoCache(),
	}
}

// Categorize scores each category against the hostname, path and title
// and returns the best one. A zero top score falls back to "other".
func (e *Engine) Categorize(rawURL, title string) domain.Category {
	key := "cat|" + rawURL
	if v, ok := e.cache.get(key); ok {
		return v.(domain.Category)
	}

	result := e.categorize(rawURL, title)
	e.cache.put(key, result)
	return result
}

func (e *Engine) categorize(rawURL, title string) domain.Category {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return domain.CategoryOther
	}

	hostname := strings.ToLower(parsed.Hostname())
	path := strings.ToLower(parsed.Path)
	titleLower := strings.ToLower(title)

	best := domain.CategoryOther
	bestScore := 0

	// Scan in declared order so the first category wins ties.
	for _, ck := range e.categories {
		score := 0
		for _, kw := range ck.Keywords {
			if strings.Contains(hostname, kw) {
				score += ScoreHostnameMatch
			}
			if strings.Contains(path, kw) {
				score += ScorePathMatch
			}
			if strings.Contains(titleLower, kw) {
				score += ScoreTitleMatch
			}
		}
		if score > bestScore {
			best = ck.Category
			bestScore = score
		}
	}

	return best
}

// SuggestTags returns up to MaxSuggestedTags tag names whose keywords
// appear in the concatenated title, description and URL. Tags come
// back in declared table order.
func (e *Engine) SuggestTags(rawURL, title, description string) []string {
	key := "tags|" + rawURL
	if v, ok := e.cache.get(key); ok {
		return v.([]string)
	}

	text := strings.ToLower(title + " " + description + " " + rawURL)

	var tags []string
	for _, tk := range e.tags {
		for _, kw := range tk.Keywords {
			if strings.Contains(text, kw) {
				tags = append(tags, tk.Tag)
				break
			}
		}
		if len(tags) == MaxSuggestedTags {
			break
		}
	}

	e.cache.put(key, tags)
	return tags
}

// SynthesizeDescription produces a short templated description from
// known hostname families, falling back to "{host} - {title}" or
// "Resource from {host}".
func (e *Engine) SynthesizeDescription(rawURL, title string) string {
	key := "desc|" + rawURL
	if v, ok := e.cache.get(key); ok {
		return v.(string)
	}

	result := e.synthesize(rawURL, title)
	e.cache.put(key, result)
	return result
}

func (e *Engine) synthesize(rawURL, title string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	switch {
	case strings.Contains(host, "github.com"):
		parts := splitPath(parsed.Path)
		if len(parts) >= 2 {
			return fmt.Sprintf("GitHub repository: %s/%s", parts[0], parts[1])
		}
		// Not a repo page; nothing useful to say.
		return ""
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return fmt.Sprintf("YouTube video: %s", title)
	case strings.Contains(host, "stackoverflow.com"):
		return fmt.Sprintf("Stack Overflow discussion about %s", title)
	}

	if len(title) > 10 {
		return fmt.Sprintf("%s - %s", host, domain.TruncateTitle(title))
	}
	return fmt.Sprintf("Resource from %s", host)
}

// CacheSize returns the number of memoized results, for diagnostics.
func (e *Engine) CacheSize() int {
	return e.cache.len()
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
