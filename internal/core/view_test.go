package core

import (
	"reflect"
	"testing"
)

func sample() []Record {
	return []Record{
		{ID: "1", Name: "Coffee", Price: 3.50, Date: "2024-01-01"},
		{ID: "2", Name: "Book", Price: 12, Date: "2024-01-02"},
	}
}

func names(rs []Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestApplySortByPriceAscending(t *testing.T) {
	q := Query{Key: SortByPrice, Order: Ascending}
	got := names(q.Apply(sample()))
	want := []string{"Coffee", "Book"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if total := Total(sample()); total != "15.50" {
		t.Fatalf("total = %q, want 15.50", total)
	}
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	q := Query{Search: "Coff", Key: SortByDate, Order: Ascending}
	got := q.Apply(sample())
	if len(got) != 1 || got[0].Name != "Coffee" {
		t.Fatalf("expected only Coffee, got %v", names(got))
	}
	if total := Total(got); total != "3.50" {
		t.Fatalf("filtered total = %q, want 3.50", total)
	}
}

func TestApplyDateFilterExactMatch(t *testing.T) {
	q := Query{Date: "2024-01-02", Key: SortByDate, Order: Ascending}
	got := q.Apply(sample())
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only Book, got %v", names(got))
	}

	// Inactive filter keeps everything.
	q.Date = ""
	if got := q.Apply(sample()); len(got) != 2 {
		t.Fatalf("expected full list, got %v", names(got))
	}
}

// The text filter and the date filter reduce to a conjunction of
// predicates, so applying them in either order yields the same set.
func TestFiltersCommute(t *testing.T) {
	records := []Record{
		{ID: "1", Name: "Coffee", Price: 3, Date: "2024-01-01"},
		{ID: "2", Name: "Coffee beans", Price: 9, Date: "2024-01-02"},
		{ID: "3", Name: "Book", Price: 12, Date: "2024-01-01"},
	}
	search, date := Query{Search: "coffee"}, Query{Date: "2024-01-01"}
	both := Query{Search: "coffee", Date: "2024-01-01", Key: SortByDate, Order: Ascending}

	var a []Record
	for _, r := range records {
		if search.Matches(r) && date.Matches(r) {
			a = append(a, r)
		}
	}
	var b []Record
	for _, r := range records {
		if date.Matches(r) && search.Matches(r) {
			b = append(b, r)
		}
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("filter order changed the result: %v vs %v", names(a), names(b))
	}
	if got := both.Apply(records); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("conjunction mismatch: %v", names(got))
	}
}

func TestSortIsStable(t *testing.T) {
	records := []Record{
		{ID: "1", Name: "Tea", Price: 2, Date: "2024-01-01"},
		{ID: "2", Name: "Coffee", Price: 2, Date: "2024-01-01"},
		{ID: "3", Name: "Juice", Price: 2, Date: "2024-01-01"},
	}
	for _, order := range []SortOrder{Ascending, Descending} {
		q := Query{Key: SortByPrice, Order: order}
		got := q.Apply(records)
		want := []string{"1", "2", "3"}
		for i, r := range got {
			if r.ID != want[i] {
				t.Fatalf("order %s: equal keys reordered: %v", order, names(got))
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := sample()
	q := Query{Key: SortByPrice, Order: Descending}
	_ = q.Apply(records)
	if records[0].ID != "1" || records[1].ID != "2" {
		t.Fatalf("input mutated: %v", names(records))
	}
}

func TestFilteredTotalNeverExceedsFullTotal(t *testing.T) {
	records := sample()
	full := SumPrice(records)
	for _, search := range []string{"", "coff", "book", "zzz"} {
		q := Query{Search: search}
		sub := SumPrice(q.Apply(records))
		if sub > full {
			t.Fatalf("search %q: subset sum %v exceeds full sum %v", search, sub, full)
		}
		if search == "" && sub != full {
			t.Fatalf("empty search should keep the full sum")
		}
	}
}
