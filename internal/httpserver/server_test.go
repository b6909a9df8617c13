package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/heuristics"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/notify"
	"github.com/linkdeck/linkdeck/internal/reminder"
	"github.com/linkdeck/linkdeck/internal/service"
	"github.com/linkdeck/linkdeck/internal/store/memory"
	"github.com/linkdeck/linkdeck/internal/timer"
)

// newTestHandler wires the full stack (memory store, heuristics,
// notifications, reminders) behind the real router.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		ListenPort:   ":0",
		ProbeTimeout: time.Second,
	}
	log := logger.New("error", false)
	st := memory.New()
	engine := heuristics.NewEngine(nil, nil)
	hub := notify.NewHub(time.Minute, log)
	t.Cleanup(hub.Close)

	var reminders *reminder.Manager
	timers := timer.New(func(id string) {
		_ = reminders.HandleFire(context.Background(), id)
	}, log)
	t.Cleanup(timers.Stop)
	reminders = reminder.NewManager(st, timers, hub, log, nil)

	links := service.NewLinks(st, engine, hub, log, cfg.ProbeTimeout, nil)

	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       "test",
		Links:         links,
		Reminders:     reminders,
		Notifications: hub,
		Store:         st,
		SweepTrigger:  make(chan struct{}, 1),
	}
	return New(cfg, log, d).http.Handler
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestLinkFlow(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/links", domain.Link{
		Title: "gin web framework",
		URL:   "https://github.com/gin-gonic/gin",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Success bool        `json:"success"`
		Link    domain.Link `json:"link"`
	}
	decode(t, rec, &created)
	if !created.Success || created.Link.ID == "" {
		t.Fatalf("add response = %+v", created)
	}
	if created.Link.Category != domain.CategoryWork {
		t.Errorf("Category = %q, want work (keyword enrichment)", created.Link.Category)
	}
	id := created.Link.ID

	rec = do(t, h, http.MethodGet, "/api/links", nil)
	var list struct {
		Links []domain.Link `json:"links"`
	}
	decode(t, rec, &list)
	if len(list.Links) != 1 || list.Links[0].ID != id {
		t.Fatalf("list = %+v, want the one created link", list.Links)
	}

	rec = do(t, h, http.MethodPost, "/api/links/"+id+"/click", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("click status = %d", rec.Code)
	}
	var clicked struct {
		Link domain.Link `json:"link"`
	}
	decode(t, rec, &clicked)
	if clicked.Link.ClickCount != 1 {
		t.Errorf("ClickCount = %d, want 1", clicked.Link.ClickCount)
	}

	rec = do(t, h, http.MethodGet, "/api/stats", nil)
	var stats struct {
		Stats domain.Stats `json:"stats"`
	}
	decode(t, rec, &stats)
	if stats.Stats.TotalClicks != 1 {
		t.Errorf("TotalClicks = %d, want 1", stats.Stats.TotalClicks)
	}

	rec = do(t, h, http.MethodDelete, "/api/links/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/links/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestAddDuplicateConflictThenConfirm(t *testing.T) {
	h := newTestHandler(t)

	first := domain.Link{Title: "docs", URL: "https://example.com/docs"}
	if rec := do(t, h, http.MethodPost, "/api/links", first); rec.Code != http.StatusCreated {
		t.Fatalf("first add status = %d", rec.Code)
	}

	again := domain.Link{Title: "docs again", URL: "https://EXAMPLE.com/docs?ref=x"}
	rec := do(t, h, http.MethodPost, "/api/links", again)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate add status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
	var conflict struct {
		Duplicate  bool         `json:"duplicate"`
		Similarity int          `json:"similarity"`
		Match      *domain.Link `json:"match"`
	}
	decode(t, rec, &conflict)
	if !conflict.Duplicate || conflict.Match == nil {
		t.Fatalf("conflict payload = %+v", conflict)
	}
	if conflict.Similarity != 100 {
		t.Errorf("Similarity = %d, want 100", conflict.Similarity)
	}

	rec = do(t, h, http.MethodPost, "/api/links?confirm=true", again)
	if rec.Code != http.StatusCreated {
		t.Fatalf("confirmed add status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAddLinkValidation(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPost, "/api/links", domain.Link{Title: "no url"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
}

func TestReminderLifecycle(t *testing.T) {
	h := newTestHandler(t)

	past := domain.Reminder{
		Title:    "too late",
		Time:     time.Now().Add(-time.Minute),
		Priority: domain.PriorityLow,
	}
	if rec := do(t, h, http.MethodPost, "/api/reminders", past); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("past reminder status = %d, want 422", rec.Code)
	}

	future := domain.Reminder{
		Title:    "standup",
		Time:     time.Now().Add(time.Hour),
		Priority: domain.PriorityHigh,
	}
	rec := do(t, h, http.MethodPost, "/api/reminders", future)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Reminder domain.Reminder `json:"reminder"`
	}
	decode(t, rec, &created)
	id := created.Reminder.ID

	rec = do(t, h, http.MethodPost, "/api/reminders/"+id+"/complete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/reminders", nil)
	var list struct {
		Reminders []domain.Reminder `json:"reminders"`
	}
	decode(t, rec, &list)
	if len(list.Reminders) != 1 || !list.Reminders[0].Completed {
		t.Fatalf("reminders = %+v, want one completed", list.Reminders)
	}

	rec = do(t, h, http.MethodDelete, "/api/reminders/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/reminders", nil)
	decode(t, rec, &list)
	if len(list.Reminders) != 0 {
		t.Errorf("reminders after delete = %+v, want none", list.Reminders)
	}
}

func TestNotificationEndpoints(t *testing.T) {
	h := newTestHandler(t)

	if rec := do(t, h, http.MethodPost, "/api/notifications/test", nil); rec.Code != http.StatusOK {
		t.Fatalf("test notification status = %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/notifications", nil)
	var list struct {
		Notifications []notify.Notification `json:"notifications"`
	}
	decode(t, rec, &list)
	if len(list.Notifications) != 1 || list.Notifications[0].ID != "test" {
		t.Fatalf("notifications = %+v, want the test notification", list.Notifications)
	}
	if list.Notifications[0].Title != "Test Notification" {
		t.Errorf("Title = %q", list.Notifications[0].Title)
	}

	if rec := do(t, h, http.MethodPost, "/api/notifications/test/click", nil); rec.Code != http.StatusOK {
		t.Fatalf("click status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/notifications/ghost/click", nil); rec.Code != http.StatusNotFound {
		t.Errorf("click unknown status = %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/notifications/ghost/buttons/nope", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad button index status = %d, want 400", rec.Code)
	}
}

func TestSettingsPatchMerges(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodPut, "/api/settings", map[string]any{"theme": "dark", "aiEnabled": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Settings domain.Settings `json:"settings"`
	}
	decode(t, rec, &got)
	if got.Settings.Theme != domain.ThemeDark || got.Settings.AIEnabled {
		t.Errorf("patched = %+v", got.Settings)
	}
	if !got.Settings.EnableNotifications || got.Settings.DefaultCategory != domain.CategoryPersonal {
		t.Errorf("untouched fields changed: %+v", got.Settings)
	}

	rec = do(t, h, http.MethodGet, "/api/settings", nil)
	var again struct {
		Settings domain.Settings `json:"settings"`
	}
	decode(t, rec, &again)
	if again.Settings != got.Settings {
		t.Errorf("GET = %+v, want %+v", again.Settings, got.Settings)
	}

	rec = do(t, h, http.MethodPut, "/api/settings", map[string]any{"theme": "sepia"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad theme status = %d, want 422", rec.Code)
	}
}

func TestSearchAndSuggest(t *testing.T) {
	h := newTestHandler(t)

	seed := []domain.Link{
		{Title: "Go blog", URL: "https://go.dev/blog"},
		{Title: "Weather", URL: "https://weather.example.com"},
	}
	for _, l := range seed {
		if rec := do(t, h, http.MethodPost, "/api/links", l); rec.Code != http.StatusCreated {
			t.Fatalf("seed add status = %d", rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/api/search?q=blog", nil)
	var found struct {
		Links []domain.Link `json:"links"`
	}
	decode(t, rec, &found)
	if len(found.Links) != 1 || found.Links[0].Title != "Go blog" {
		t.Errorf("search = %+v, want just the blog", found.Links)
	}

	rec = do(t, h, http.MethodGet, "/api/links/suggest?q=weather", nil)
	decode(t, rec, &found)
	if len(found.Links) != 1 || found.Links[0].Title != "Weather" {
		t.Errorf("suggest = %+v, want just weather", found.Links)
	}

	rec = do(t, h, http.MethodGet, "/api/links/suggest?q=", nil)
	decode(t, rec, &found)
	if len(found.Links) != 0 {
		t.Errorf("blank suggest = %+v, want empty", found.Links)
	}
}

func TestExportAndImport(t *testing.T) {
	h := newTestHandler(t)

	add := domain.Link{Title: "Docs", URL: "https://example.com/docs"}
	if rec := do(t, h, http.MethodPost, "/api/links", add); rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d", rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/export/csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("csv status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Content-Type = %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), service.CSVHeader+"\n") {
		t.Errorf("csv body %q missing header", rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("backup status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "linkdeck-backup-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	var backup service.Backup
	decode(t, rec, &backup)
	if len(backup.Links) != 1 {
		t.Fatalf("backup links = %+v", backup.Links)
	}

	other := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(rec.Body.Bytes()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	other.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("import status = %d, body %s", w.Code, w.Body.String())
	}

	rec = do(t, other, http.MethodGet, "/api/links", nil)
	var list struct {
		Links []domain.Link `json:"links"`
	}
	decode(t, rec, &list)
	if len(list.Links) != 1 || list.Links[0].Title != "Docs" {
		t.Errorf("imported links = %+v", list.Links)
	}
}

func TestHealthzAndReadyz(t *testing.T) {
	h := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	var hz struct {
		Status string `json:"status"`
	}
	decode(t, rec, &hz)
	if hz.Status != "ok" {
		t.Errorf("status = %q", hz.Status)
	}

	rec = do(t, h, http.MethodGet, "/readyz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz status = %d", rec.Code)
	}
	var rz struct {
		Ready bool   `json:"ready"`
		Store string `json:"store"`
	}
	decode(t, rec, &rz)
	if !rz.Ready || rz.Store != "memory" {
		t.Errorf("readyz = %+v", rz)
	}
}

func TestSweepTriggerBackpressure(t *testing.T) {
	h := newTestHandler(t)

	if rec := do(t, h, http.MethodPost, "/api/health/sweep", nil); rec.Code != http.StatusAccepted {
		t.Fatalf("first trigger status = %d, want 202", rec.Code)
	}
	// Nothing drains the channel here, so a second trigger is refused.
	if rec := do(t, h, http.MethodPost, "/api/health/sweep", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second trigger status = %d, want 429", rec.Code)
	}
}
