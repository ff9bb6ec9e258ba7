package core

import (
	"sort"
	"strings"
)

// Sort keys for the derived view.
const (
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByDate  SortKey = "date"
)

// Sort orders for the derived view.
const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

type (
	SortKey   string
	SortOrder string

	// Query describes the derived view over a record list: a search string
	// matched case-insensitively against names, an optional exact-date
	// filter (empty means inactive), and the sort selection.
	Query struct {
		Search string
		Date   string
		Key    SortKey
		Order  SortOrder
	}
)

// IsValid reports whether k names a sortable field.
func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortByPrice, SortByDate:
		return true
	}
	return false
}

// IsValid reports whether o is a recognized sort order.
func (o SortOrder) IsValid() bool {
	return o == Ascending || o == Descending
}

// Active reports whether any filter would exclude records.
func (q Query) Active() bool {
	return q.Search != "" || q.Date != ""
}

// Matches applies the query's filters to a single record. The text filter
// and the date filter are a conjunction, so their order is immaterial.
func (q Query) Matches(r Record) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Search)) {
		return false
	}
	if q.Date != "" && r.Date != q.Date {
		return false
	}
	return true
}

// Apply derives the view: filter, then stable-sort. The input slice is
// never mutated; records with equal sort keys keep their relative order
// from the filtered input for both orders.
func (q Query) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if q.Matches(r) {
			out = append(out, r)
		}
	}

	key := q.Key
	if !key.IsValid() {
		key = SortByDate
	}
	asc := q.Order != Descending

	sort.SliceStable(out, func(i, j int) bool {
		var less, greater bool
		switch key {
		case SortByName:
			less, greater = out[i].Name < out[j].Name, out[i].Name > out[j].Name
		case SortByPrice:
			less, greater = out[i].Price < out[j].Price, out[i].Price > out[j].Price
		default:
			// YYYY-MM-DD: lexicographic order is chronological order.
			less, greater = out[i].Date < out[j].Date, out[i].Date > out[j].Date
		}
		if asc {
			return less
		}
		return greater
	})

	return out
}

// SumPrice totals the price of every record in the slice.
func SumPrice(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Price
	}
	return total
}

// Total formats the price sum with exactly two decimals. The same function
// serves the full list and the filtered subset for the "X of Y" display.
func Total(records []Record) string {
	return FormatAmount(SumPrice(records))
}
