package heuristics

import (
	"math"
	"net/url"
	"strings"

	"github.com/linkdeck/linkdeck/internal/domain"
)

// DuplicateThreshold is the similarity score above which two
// normalized URLs are considered duplicates.
const DuplicateThreshold = 85

// DuplicateMatch is the outcome of a duplicate scan.
type DuplicateMatch struct {
	IsDuplicate bool
	Link        *domain.Link
	Similarity  int
}

// Similarity scores how alike two strings are on a 0..100 scale:
// round((1 - levenshtein/maxlen) * 100). Identical strings score 100,
// including two empty strings.
func Similarity(a, b string) int {
	longer, shorter := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}

	if len(longer) == 0 {
		return 100
	}

	dist := levenshtein(longer, shorter)
	return int(math.Round((1 - float64(dist)/float64(len(longer))) * 100))
}

// DetectDuplicate scans every existing link and returns the
// highest-similarity match against the normalized form of rawURL.
// An exact normalized match scores 100; anything above
// DuplicateThreshold flags a duplicate.
func DetectDuplicate(rawURL string, links []domain.Link) DuplicateMatch {
	normalized, ok := normalizeURL(rawURL)
	if !ok {
		return DuplicateMatch{}
	}

	best := DuplicateMatch{}
	for i := range links {
		existing, ok := normalizeURL(links[i].URL)
		if !ok {
			continue
		}

		if normalized == existing {
			return DuplicateMatch{IsDuplicate: true, Link: &links[i], Similarity: 100}
		}

		if sim := Similarity(normalized, existing); sim > DuplicateThreshold && sim > best.Similarity {
			best = DuplicateMatch{IsDuplicate: true, Link: &links[i], Similarity: sim}
		}
	}

	return best
}

// normalizeURL reduces a URL to lower-cased hostname+path, dropping
// scheme, query and fragment.
func normalizeURL(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "", false
	}
	return strings.ToLower(parsed.Hostname() + parsed.Path), true
}

// levenshtein computes the edit distance between two rune slices with
// the classic dynamic programming matrix, two rows at a time.
func levenshtein(r1, r2 []rune) int {
	prev := make([]int, len(r1)+1)
	curr := make([]int, len(r1)+1)

	for j := 0; j <= len(r1); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r2); i++ {
		curr[0] = i
		for j := 1; j <= len(r1); j++ {
			if r2[i-1] == r1[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(r1)]
}
