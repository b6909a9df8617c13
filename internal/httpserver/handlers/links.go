package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkdeck/linkdeck/internal/domain"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
)

type linkResponse struct {
	Success bool         `json:"success"`
	Link    *domain.Link `json:"link"`
}

type linksResponse struct {
	Success bool          `json:"success"`
	Links   []domain.Link `json:"links"`
}

func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := d.Links.List(r.Context())
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linksResponse{Success: true, Links: links})
	}
}

func GetLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := d.Links.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{Success: true, Link: link})
	}
}

func AddLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.Link
		if !decodeBody(w, r, &body) {
			return
		}
		confirmed := r.URL.Query().Get("confirm") == "true"

		link, err := d.Links.Add(r.Context(), body, confirmed)
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, linkResponse{Success: true, Link: link})
	}
}

func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.Link
		if !decodeBody(w, r, &body) {
			return
		}
		link, err := d.Links.Update(r.Context(), chi.URLParam(r, "id"), body)
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{Success: true, Link: link})
	}
}

func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Links.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}

func CaptureLink(d deps.Deps) http.HandlerFunc {
	type captureRequest struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var body captureRequest
		if !decodeBody(w, r, &body) {
			return
		}
		link, err := d.Links.Capture(r.Context(), body.URL, body.Title)
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusCreated, linkResponse{Success: true, Link: link})
	}
}

func ClickLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := d.Links.Track(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{Success: true, Link: link})
	}
}

func AddLinkTag(d deps.Deps) http.HandlerFunc {
	type tagRequest struct {
		Tag string `json:"tag"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var body tagRequest
		if !decodeBody(w, r, &body) {
			return
		}
		link, err := d.Links.AddTag(r.Context(), chi.URLParam(r, "id"), body.Tag)
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{Success: true, Link: link})
	}
}

func RemoveLinkTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := d.Links.RemoveTag(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "tag"))
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{Success: true, Link: link})
	}
}

func ReorderLinks(d deps.Deps) http.HandlerFunc {
	type orderRequest struct {
		Order []string `json:"order"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var body orderRequest
		if !decodeBody(w, r, &body) {
			return
		}
		if err := d.Links.Reorder(r.Context(), body.Order); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success bool `json:"success"`
		}{true})
	}
}

func CheckLinkHealth(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		link, err := d.Links.CheckHealth(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{Success: true, Link: link})
	}
}

func SuggestLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		links, err := d.Links.Suggest(r.Context(), q)
		if err != nil {
			writeError(d, w, err)
			return
		}
		if links == nil {
			links = []domain.Link{}
		}
		writeJSON(w, http.StatusOK, linksResponse{Success: true, Links: links})
	}
}

func SearchLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		links, err := d.Links.Search(r.Context(), q)
		if err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, linksResponse{Success: true, Links: links})
	}
}
