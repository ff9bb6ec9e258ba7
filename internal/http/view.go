package http

import (
	"net/url"
	"strconv"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/form"
)

// defaultQuery is the view state a fresh page starts from: no filters,
// newest expenses first.
func defaultQuery() core.Query {
	return core.Query{Key: core.SortByDate, Order: core.Descending}
}

// parseQuery reads the view state from request values. Unknown sort keys
// or orders fall back to the defaults, a malformed date filter is treated
// as no filter.
func parseQuery(get func(string) string) core.Query {
	q := defaultQuery()
	q.Search = sanitizeInput(get("search"))
	if d := sanitizeInput(get("date")); core.ValidateDate(d) == nil {
		q.Date = d
	}
	if k := core.SortKey(get("sort")); k.IsValid() {
		q.Key = k
	}
	if o := core.SortOrder(get("order")); o.IsValid() {
		q.Order = o
	}
	return q
}

// listURL builds the index URL carrying the view state, with defaults
// omitted so the bare page keeps a bare URL.
func listURL(q core.Query, editID string) string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	def := defaultQuery()
	if q.Key != def.Key {
		v.Set("sort", string(q.Key))
	}
	if q.Order != def.Order {
		v.Set("order", string(q.Order))
	}
	if editID != "" {
		v.Set("edit", editID)
	}
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

// sortURL returns the URL for clicking a column header: a new key sorts
// ascending, clicking the active key flips the order.
func sortURL(q core.Query, key core.SortKey) string {
	next := q
	next.Key = key
	next.Order = core.Ascending
	if q.Key == key && q.Order == core.Ascending {
		next.Order = core.Descending
	}
	return listURL(next, "")
}

func sortMark(q core.Query, key core.SortKey) string {
	if q.Key != key {
		return ""
	}
	if q.Order == core.Ascending {
		return " \u25b2"
	}
	return " \u25bc"
}

type rowData struct {
	ID        string
	Name      string
	Price     string
	Date      string
	DateLabel string
	Pending   bool
	EditURL   string
}

type formData struct {
	ID      string
	Name    string
	Price   string
	Date    string
	Editing bool
	Error   string
}

type pageData struct {
	Theme     string
	NextTheme string

	Search string
	Date   string
	Sort   string
	Order  string

	Rows      []rowData
	Total     string
	FullTotal string
	Count     int
	Empty     bool
	NoMatches bool

	FilterActive   bool
	ClearSearchURL string
	ClearDateURL   string
	CancelEditURL  string

	NameSortURL   string
	PriceSortURL  string
	DateSortURL   string
	NameSortMark  string
	PriceSortMark string
	DateSortMark  string

	Form formData
}

// buildPage assembles everything the index template needs. The form
// fields come from the controller so create and edit mode render the
// same way the submit path behaves.
func (s *Server) buildPage(q core.Query, theme string, fields form.Fields, formErr string) pageData {
	records := s.repository.List()
	visible := q.Apply(records)

	pending := make(map[string]bool)
	for _, id := range s.repository.Pending() {
		pending[id] = true
	}

	now := time.Now()
	rows := make([]rowData, 0, len(visible))
	for _, rec := range visible {
		rows = append(rows, rowData{
			ID:        rec.ID,
			Name:      rec.Name,
			Price:     core.FormatAmount(rec.Price),
			Date:      rec.Date,
			DateLabel: core.DateLabel(rec.Date, now),
			Pending:   pending[rec.ID],
			EditURL:   listURL(q, rec.ID),
		})
	}

	nextTheme := "dark"
	if theme == "dark" {
		nextTheme = "light"
	}

	clearedSearch := q
	clearedSearch.Search = ""
	clearedDate := q
	clearedDate.Date = ""

	fd := formData{
		ID:      fields.EditingID,
		Name:    fields.Name,
		Date:    fields.Date,
		Editing: fields.EditingID != "",
		Error:   formErr,
	}
	if fields.HasPrice {
		fd.Price = strconv.FormatFloat(fields.Price, 'f', -1, 64)
	}

	return pageData{
		Theme:     theme,
		NextTheme: nextTheme,

		Search: q.Search,
		Date:   q.Date,
		Sort:   string(q.Key),
		Order:  string(q.Order),

		Rows:      rows,
		Total:     core.Total(visible),
		FullTotal: core.Total(records),
		Count:     len(visible),
		Empty:     len(records) == 0,
		NoMatches: len(records) > 0 && len(visible) == 0,

		FilterActive:   q.Active(),
		ClearSearchURL: listURL(clearedSearch, ""),
		ClearDateURL:   listURL(clearedDate, ""),
		CancelEditURL:  listURL(q, ""),

		NameSortURL:   sortURL(q, core.SortByName),
		PriceSortURL:  sortURL(q, core.SortByPrice),
		DateSortURL:   sortURL(q, core.SortByDate),
		NameSortMark:  sortMark(q, core.SortByName),
		PriceSortMark: sortMark(q, core.SortByPrice),
		DateSortMark:  sortMark(q, core.SortByDate),

		Form: fd,
	}
}
