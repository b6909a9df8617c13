package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/heuristics"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/notify"
	"github.com/linkdeck/linkdeck/internal/store"
)

const (
	// MaxSuggestions caps the auto-fill suggestion list.
	MaxSuggestions = 10

	// CapturedDescription is the canned description for links saved
	// through the capture endpoint.
	CapturedDescription = "Added from context menu"
)

// DuplicateDetectedError reports that a new link closely matches an
// existing one. Not a failure: the caller may retry with the
// confirmed flag to add it anyway.
type DuplicateDetectedError struct {
	Match heuristics.DuplicateMatch
}

func (e *DuplicateDetectedError) Error() string {
	return fmt.Sprintf("similar link found (%d%% match): %q",
		e.Match.Similarity, e.Match.Link.Title)
}

// Links is the link command surface. Every operation loads the
// affected collections, applies the change and saves them back; there
// is no long-lived in-memory working set.
type Links struct {
	store        store.Store
	engine       *heuristics.Engine
	presenter    notify.Presenter
	log          logger.Logger
	now          func() time.Time
	probeTimeout time.Duration
}

// NewLinks wires the link service. A nil clock defaults to time.Now.
func NewLinks(
	st store.Store,
	engine *heuristics.Engine,
	presenter notify.Presenter,
	log logger.Logger,
	probeTimeout time.Duration,
	now func() time.Time,
) *Links {
	if now == nil {
		now = time.Now
	}
	return &Links{
		store:        st,
		engine:       engine,
		presenter:    presenter,
		log:          log,
		now:          now,
		probeTimeout: probeTimeout,
	}
}

// List returns all links in stored order, newest first.
func (s *Links) List(ctx context.Context) ([]domain.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}
	return links, nil
}

// Get returns the link with the given id.
func (s *Links) Get(ctx context.Context, id string) (*domain.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}
	for i := range links {
		if links[i].ID == id {
			return &links[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add validates, enriches and persists a new link, newest first.
// Unless confirmed, a close match against an existing link aborts
// with DuplicateDetectedError carrying the match; retrying with
// confirmed=true bypasses the check. Enrichment fills a missing or
// default category, an empty description and empty tags from the
// heuristics engine, each gated by the corresponding settings flag.
func (s *Links) Add(ctx context.Context, l domain.Link, confirmed bool) (*domain.Link, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load settings", Err: err}
	}
	if l.Category == "" {
		l.Category = settings.DefaultCategory
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	if settings.AIEnabled {
		if !confirmed {
			if match := heuristics.DetectDuplicate(l.URL, links); match.IsDuplicate {
				return nil, &DuplicateDetectedError{Match: match}
			}
		}

		if l.Category == settings.DefaultCategory || l.Category == domain.CategoryOther {
			if settings.AutoCategorize {
				if c := s.engine.Categorize(l.URL, l.Title); c != domain.CategoryOther {
					l.Category = c
				}
			}
		}
		if strings.TrimSpace(l.Description) == "" {
			l.Description = s.engine.SynthesizeDescription(l.URL, l.Title)
		}
		if len(l.Tags) == 0 && settings.SmartTags {
			l.Tags = s.engine.SuggestTags(l.URL, l.Title, l.Description)
		}
	}

	now := s.now()
	if l.ID == "" {
		l.ID = domain.NewID()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.ClickCount = 0

	links = append([]domain.Link{l}, links...)
	if err := s.store.SaveLinks(ctx, links); err != nil {
		return nil, &domain.StoreError{Op: "save links", Err: err}
	}

	s.log.Info("link added",
		logger.String("id", l.ID),
		logger.String("url", l.URL),
		logger.String("category", string(l.Category)))

	return &l, nil
}

// Update replaces the editable fields of an existing link and stamps
// UpdatedAt. Identity, click count and health state are kept.
func (s *Links) Update(ctx context.Context, id string, upd domain.Link) (*domain.Link, error) {
	upd.ID = id
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		links[i].Title = upd.Title
		links[i].URL = upd.URL
		links[i].Category = upd.Category
		links[i].Description = upd.Description
		if upd.Tags != nil {
			links[i].Tags = upd.Tags
		}
		links[i].UpdatedAt = s.now()

		if err := s.store.SaveLinks(ctx, links); err != nil {
			return nil, &domain.StoreError{Op: "save links", Err: err}
		}

		s.log.Info("link updated", logger.String("id", id))
		return &links[i], nil
	}

	return nil, domain.ErrNotFound
}

// Delete removes the link with the given id.
func (s *Links) Delete(ctx context.Context, id string) error {
	links, err := s.store.Links(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load links", Err: err}
	}

	kept := links[:0]
	for _, l := range links {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(links) {
		return domain.ErrNotFound
	}

	if err := s.store.SaveLinks(ctx, kept); err != nil {
		return &domain.StoreError{Op: "save links", Err: err}
	}

	s.log.Info("link deleted", logger.String("id", id))
	return nil
}

// Capture saves a link grabbed from the current page: title clipped,
// category other, canned description, no enrichment. A confirmation
// notification is presented on success.
func (s *Links) Capture(ctx context.Context, rawURL, title string) (*domain.Link, error) {
	l := domain.Link{
		ID:          domain.NewID(),
		Title:       domain.TruncateTitle(title),
		URL:         rawURL,
		Category:    domain.CategoryOther,
		Description: CapturedDescription,
		CreatedAt:   s.now(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	links = append([]domain.Link{l}, links...)
	if err := s.store.SaveLinks(ctx, links); err != nil {
		return nil, &domain.StoreError{Op: "save links", Err: err}
	}

	if err := s.presenter.Present(notify.Notification{
		ID:       uuid.NewString(),
		Title:    "Link Added!",
		Message:  fmt.Sprintf("%q has been added to linkdeck", l.Title),
		Priority: domain.PriorityLow,
	}); err != nil {
		s.log.Warn("capture notification failed", logger.Error(err))
	}

	s.log.Info("link captured", logger.String("id", l.ID), logger.String("url", l.URL))
	return &l, nil
}

// Track records a click: the link's own counter and the global usage
// stats move together.
func (s *Links) Track(ctx context.Context, id string) (*domain.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	idx := -1
	for i := range links {
		if links[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, domain.ErrNotFound
	}

	links[idx].ClickCount++
	if err := s.store.SaveLinks(ctx, links); err != nil {
		return nil, &domain.StoreError{Op: "save links", Err: err}
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load stats", Err: err}
	}
	stats.RecordClick(s.now())
	if err := s.store.SaveStats(ctx, stats); err != nil {
		return nil, &domain.StoreError{Op: "save stats", Err: err}
	}

	return &links[idx], nil
}

// AddTag appends a tag unless the link already carries it.
func (s *Links) AddTag(ctx context.Context, id, tag string) (*domain.Link, error) {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if tag == "" {
		return nil, &domain.ValidationError{Field: "tag", Reason: "required"}
	}

	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		if links[i].HasTag(tag) {
			return &links[i], nil
		}
		links[i].Tags = append(links[i].Tags, tag)
		links[i].UpdatedAt = s.now()

		if err := s.store.SaveLinks(ctx, links); err != nil {
			return nil, &domain.StoreError{Op: "save links", Err: err}
		}
		return &links[i], nil
	}

	return nil, domain.ErrNotFound
}

// RemoveTag drops a tag. Removing an absent tag is a no-op.
func (s *Links) RemoveTag(ctx context.Context, id, tag string) (*domain.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		kept := links[i].Tags[:0]
		for _, t := range links[i].Tags {
			if !strings.EqualFold(t, tag) {
				kept = append(kept, t)
			}
		}
		links[i].Tags = kept
		links[i].UpdatedAt = s.now()

		if err := s.store.SaveLinks(ctx, links); err != nil {
			return nil, &domain.StoreError{Op: "save links", Err: err}
		}
		return &links[i], nil
	}

	return nil, domain.ErrNotFound
}

// Reorder rearranges links to the given id order. Ids not present in
// the store are rejected; stored links missing from the order keep
// their relative order after the named ones.
func (s *Links) Reorder(ctx context.Context, ids []string) error {
	links, err := s.store.Links(ctx)
	if err != nil {
		return &domain.StoreError{Op: "load links", Err: err}
	}

	byID := make(map[string]int, len(links))
	for i, l := range links {
		byID[l.ID] = i
	}

	ordered := make([]domain.Link, 0, len(links))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		idx, ok := byID[id]
		if !ok {
			return &domain.ValidationError{Field: "order", Reason: fmt.Sprintf("unknown link id %q", id)}
		}
		if taken[id] {
			return &domain.ValidationError{Field: "order", Reason: fmt.Sprintf("duplicate link id %q", id)}
		}
		taken[id] = true
		ordered = append(ordered, links[idx])
	}
	for _, l := range links {
		if !taken[l.ID] {
			ordered = append(ordered, l)
		}
	}

	if err := s.store.SaveLinks(ctx, ordered); err != nil {
		return &domain.StoreError{Op: "save links", Err: err}
	}
	return nil
}

// Suggest returns up to MaxSuggestions links whose title or URL
// contains the query, case-insensitive, in stored order. Used by
// form auto-fill.
func (s *Links) Suggest(ctx context.Context, query string) ([]domain.Link, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	var out []domain.Link
	for _, l := range links {
		if strings.Contains(strings.ToLower(l.Title), query) ||
			strings.Contains(strings.ToLower(l.URL), query) {
			out = append(out, l)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out, nil
}

// Search ranks all links against the query with the weighted
// relevance scoring and returns matches in descending score order.
func (s *Links) Search(ctx context.Context, query string) ([]domain.Link, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	ranked := heuristics.RankSearch(query, links, s.now())
	out := make([]domain.Link, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Link)
	}
	return out, nil
}
