package http

import (
	"bytes"
	"log/slog"
	"net/http"

	"spendlog/internal/cache"
	"spendlog/internal/core"
	"spendlog/internal/form"
	"spendlog/internal/storage"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	q := parseQuery(r.URL.Query().Get)
	editID := sanitizeInput(r.URL.Query().Get("edit"))
	theme := storage.ThemeLight
	if s.themes != nil {
		theme = s.themes.Theme(r.Context())
	}

	ctrl := form.NewController(s.repository)
	if editID != "" && !ctrl.BeginEdit(editID) {
		// The record went away; fall back to create mode.
		editID = ""
	}

	// Edit mode and pending deletes are transient per-request state, so
	// only plain list views go through the render cache.
	cacheable := editID == "" && len(s.repository.Pending()) == 0
	key := cache.PageKey(q, theme, s.repository.Version())
	if cacheable {
		if page, ok := s.pages.Get(key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(page)
			return
		}
	}

	data := s.buildPage(q, theme, ctrl.Fields(), "")

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if cacheable {
		s.pages.Set(key, buf.Bytes())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleSubmit creates or updates an expense from the form post, then
// redirects back to the list. The posted view state rides along so the
// page keeps its filters, except that a successful update clears the
// date filter so the edited record stays visible.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	q := parseQuery(r.PostForm.Get)
	id := sanitizeInput(r.PostForm.Get("id"))

	ctrl := form.NewController(s.repository)
	if id != "" && !ctrl.BeginEdit(id) {
		// The record was deleted while the form was open.
		slog.WarnContext(r.Context(), "Edit target vanished", "record_id", id)
		http.Redirect(w, r, listURL(q, ""), http.StatusSeeOther)
		return
	}

	// The record's own date posts as expense_date; plain date carries the
	// list's filter state.
	ctrl.SetName(sanitizeInput(r.PostForm.Get("name")))
	ctrl.SetDate(sanitizeInput(r.PostForm.Get("expense_date")))

	priceRaw := sanitizeInput(r.PostForm.Get("price"))
	if price, err := core.ParsePrice(priceRaw); err == nil {
		ctrl.SetPrice(price)
	} else {
		ctrl.ClearPrice()
	}

	if !ctrl.Valid() {
		s.renderFormError(w, r, q, ctrl.Fields(), "A name and a price greater than zero are required.")
		return
	}

	res := ctrl.Submit(r.Context())
	if res.Updated {
		q.Date = ""
	}
	http.Redirect(w, r, listURL(q, ""), http.StatusSeeOther)
}

// renderFormError re-renders the page with the submitted values and an
// error message, so nothing the user typed is lost.
func (s *Server) renderFormError(w http.ResponseWriter, r *http.Request, q core.Query, fields form.Fields, msg string) {
	if s.templates == nil {
		http.Error(w, msg, http.StatusUnprocessableEntity)
		return
	}
	theme := storage.ThemeLight
	if s.themes != nil {
		theme = s.themes.Theme(r.Context())
	}
	data := s.buildPage(q, theme, fields, msg)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Form error render failed", "error", err)
	}
}

// handleDelete schedules the delayed removal of an expense and redirects
// back to the list. Unknown ids are harmless.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	q := parseQuery(r.PostForm.Get)
	id := sanitizeInput(r.PostForm.Get("id"))
	if id != "" {
		s.repository.Delete(r.Context(), id)
	}
	http.Redirect(w, r, listURL(q, ""), http.StatusSeeOther)
}

// handleTheme persists the theme choice and redirects back.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	q := parseQuery(r.PostForm.Get)
	theme := sanitizeInput(r.PostForm.Get("theme"))
	if s.themes != nil {
		if err := s.themes.SetTheme(r.Context(), theme); err != nil {
			slog.WarnContext(r.Context(), "Theme update rejected", "theme", theme, "error", err)
		}
	}
	http.Redirect(w, r, listURL(q, ""), http.StatusSeeOther)
}
