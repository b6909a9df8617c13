package heuristics

import (
	"sort"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
)

const (
	// Search scoring weights by matched field.
	SearchTitleWeight       = 10.0
	SearchTagWeight         = 8.0
	SearchDescriptionWeight = 7.0
	SearchCategoryWeight    = 6.0
	SearchURLWeight         = 5.0

	// Fuzzy title matches above this similarity contribute score.
	SearchFuzzyThreshold = 60

	// Recency boost for links created within the last week.
	SearchRecencyBoost  = 2.0
	SearchRecencyWindow = 7 * 24 * time.Hour

	// Click boost, capped so heavy use never dominates relevance.
	SearchClickBoostCap = 5.0
)

// SearchCandidate pairs a link with its relevance score.
type SearchCandidate struct {
	Link  domain.Link
	Score float64
}

// RankSearch scores every link against the query and returns matches
// sorted by descending score. An empty query matches nothing.
func RankSearch(query string, links []domain.Link, now time.Time) []SearchCandidate {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	candidates := make([]SearchCandidate, 0, len(links))

	for _, link := range links {
		score := scoreLink(query, link, now)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, SearchCandidate{Link: link, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

func scoreLink(query string, link domain.Link, now time.Time) float64 {
	var score float64

	title := strings.ToLower(link.Title)

	if strings.Contains(title, query) {
		score += SearchTitleWeight
	}
	if strings.Contains(strings.ToLower(link.URL), query) {
		score += SearchURLWeight
	}
	if link.Description != "" && strings.Contains(strings.ToLower(link.Description), query) {
		score += SearchDescriptionWeight
	}
	for _, tag := range link.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			score += SearchTagWeight
			break
		}
	}
	if strings.Contains(strings.ToLower(string(link.Category)), query) {
		score += SearchCategoryWeight
	}

	// Fuzzy matching catches typos in the title.
	if sim := Similarity(query, title); sim > SearchFuzzyThreshold {
		score += float64(sim) / 10
	}

	if now.Sub(link.CreatedAt) < SearchRecencyWindow {
		score += SearchRecencyBoost
	}

	if link.ClickCount > 5 {
		boost := float64(link.ClickCount) / 2
		if boost > SearchClickBoostCap {
			boost = SearchClickBoostCap
		}
		score += boost
	}

	return score
}
