package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/logger"
)

// CSVHeader is the fixed column set of the CSV export.
const CSVHeader = "Title,URL,Category,Description,Tags,Created,Clicks"

// Backup is the full JSON export: all collections plus the export
// timestamp.
type Backup struct {
	Links      []domain.Link     `json:"links"`
	Reminders  []domain.Reminder `json:"reminders"`
	Settings   domain.Settings   `json:"settings"`
	ExportDate time.Time         `json:"exportDate"`
}

// ImportPayload is the accepted import shape. Settings is a partial
// patch; a full exported settings object parses as a patch with every
// field present, so backups import unchanged.
type ImportPayload struct {
	Links     []domain.Link         `json:"links"`
	Reminders []domain.Reminder     `json:"reminders"`
	Settings  *domain.SettingsPatch `json:"settings"`
}

// ExportBackup snapshots every collection into a Backup.
func (s *Links) ExportBackup(ctx context.Context) (*Backup, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}
	reminders, err := s.store.Reminders(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load reminders", Err: err}
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load settings", Err: err}
	}

	return &Backup{
		Links:      links,
		Reminders:  reminders,
		Settings:   settings,
		ExportDate: s.now(),
	}, nil
}

// Import merges a payload into the current data: links and reminders
// whose ids are not yet present are appended, the settings patch is
// merged over the current settings.
func (s *Links) Import(ctx context.Context, payload ImportPayload) error {
	if len(payload.Links) > 0 {
		links, err := s.store.Links(ctx)
		if err != nil {
			return &domain.StoreError{Op: "load links", Err: err}
		}
		seen := make(map[string]bool, len(links))
		for _, l := range links {
			seen[l.ID] = true
		}
		added := 0
		for _, l := range payload.Links {
			if l.ID == "" || seen[l.ID] {
				continue
			}
			seen[l.ID] = true
			links = append(links, l)
			added++
		}
		if added > 0 {
			if err := s.store.SaveLinks(ctx, links); err != nil {
				return &domain.StoreError{Op: "save links", Err: err}
			}
		}
		s.log.Info("links imported", logger.Int("added", added))
	}

	if len(payload.Reminders) > 0 {
		reminders, err := s.store.Reminders(ctx)
		if err != nil {
			return &domain.StoreError{Op: "load reminders", Err: err}
		}
		seen := make(map[string]bool, len(reminders))
		for _, r := range reminders {
			seen[r.ID] = true
		}
		added := 0
		for _, r := range payload.Reminders {
			if r.ID == "" || seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			reminders = append(reminders, r)
			added++
		}
		if added > 0 {
			if err := s.store.SaveReminders(ctx, reminders); err != nil {
				return &domain.StoreError{Op: "save reminders", Err: err}
			}
		}
		s.log.Info("reminders imported", logger.Int("added", added))
	}

	if payload.Settings != nil {
		if err := payload.Settings.Validate(); err != nil {
			return err
		}
		current, err := s.store.Settings(ctx)
		if err != nil {
			return &domain.StoreError{Op: "load settings", Err: err}
		}
		merged := domain.MergeSettings(current, *payload.Settings)
		if err := s.store.SaveSettings(ctx, merged); err != nil {
			return &domain.StoreError{Op: "save settings", Err: err}
		}
		s.log.Info("settings imported")
	}

	return nil
}

// ExportCSV renders all links as CSV. Every value is double-quoted
// with inner quotes doubled, tags are semicolon-joined.
func (s *Links) ExportCSV(ctx context.Context) ([]byte, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	var b strings.Builder
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	for _, l := range links {
		row := []string{
			l.Title,
			l.URL,
			string(l.Category),
			l.Description,
			strings.Join(l.Tags, ";"),
			l.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(l.ClickCount),
		}
		for i, v := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(v, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	return []byte(b.String()), nil
}

var htmlExportTmpl = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>My Links - Exported from linkdeck</title>
  <style>
    body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
    h1 { color: #667eea; }
    .link { padding: 15px; margin: 10px 0; border: 1px solid #e2e8f0; border-radius: 8px; }
    .link-title { font-weight: bold; font-size: 1.1em; margin-bottom: 5px; }
    .link-url { color: #667eea; text-decoration: none; }
    .link-category { background: #667eea; color: white; padding: 2px 8px; border-radius: 4px; font-size: 0.8em; }
  </style>
</head>
<body>
  <h1>My Saved Links</h1>
  <p>Exported on {{.ExportDate.Format "Jan 2, 2006 15:04"}}</p>
{{range .Links}}
  <div class="link">
    <div class="link-title">{{.Title}}</div>
    <a href="{{.URL}}" class="link-url">{{.URL}}</a>
    <p>{{.Description}}</p>
    <span class="link-category">{{.Category}}</span>
    {{- range .Tags}} <span class="link-category">{{.}}</span>{{end}}
  </div>
{{end}}
</body>
</html>
`))

// ExportHTML renders all links as a standalone HTML page.
func (s *Links) ExportHTML(ctx context.Context) ([]byte, error) {
	links, err := s.store.Links(ctx)
	if err != nil {
		return nil, &domain.StoreError{Op: "load links", Err: err}
	}

	var buf bytes.Buffer
	data := struct {
		Links      []domain.Link
		ExportDate time.Time
	}{Links: links, ExportDate: s.now()}

	if err := htmlExportTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render html export: %w", err)
	}
	return buf.Bytes(), nil
}
