package catalog

import (
	"reflect"
	"testing"

	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

func sample() []models.Event {
	return []models.Event{
		{ID: "1", Title: "Jazz Night", Category: "Music", Location: "Karachi"},
		{ID: "2", Title: "City Derby", Category: "Sports", Location: "Lahore"},
		{ID: "3", Title: "Rock Fest", Category: "Music", Location: "Islamabad"},
	}
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}

func TestFilter_CategoryKeepsOnlyMatchesInOrder(t *testing.T) {
	got := Filter(sample(), Criteria{Category: "Music"})

	if want := []string{"1", "3"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("expected %v, got %v", want, ids(got))
	}
}

func TestFilter_NoFalseNegatives(t *testing.T) {
	source := sample()
	for _, cat := range []string{"Music", "Sports", "Art"} {
		got := Filter(source, Criteria{Category: cat})

		want := 0
		for _, ev := range source {
			if ev.Category == cat {
				want++
			}
		}
		if len(got) != want {
			t.Errorf("%s: expected %d records, got %d", cat, want, len(got))
		}
		for _, ev := range got {
			if ev.Category != cat {
				t.Errorf("%s: unexpected record %+v", cat, ev)
			}
		}
	}
}

func TestFilter_EmptyCategoryReturnsSourceUnchanged(t *testing.T) {
	source := sample()
	got := Filter(source, Criteria{})

	if !reflect.DeepEqual(got, source) {
		t.Errorf("expected source list unchanged, got %v", ids(got))
	}
}

func TestFilter_EmptySource(t *testing.T) {
	got := Filter([]models.Event{}, Criteria{Category: "Tech"})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}

func TestFilter_UnknownCategory(t *testing.T) {
	if got := Filter(sample(), Criteria{Category: "Tech"}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", ids(got))
	}
}

func TestFilter_CategoryIsCaseSensitive(t *testing.T) {
	if got := Filter(sample(), Criteria{Category: "music"}); len(got) != 0 {
		t.Errorf("expected no match for lower-case category, got %v", ids(got))
	}
}

func TestFilter_QueryDoesNotNarrow(t *testing.T) {
	source := sample()
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"empty category with query", Criteria{Query: "jazz"}, []string{"1", "2", "3"}},
		{"blank query", Criteria{Query: "   "}, []string{"1", "2", "3"}},
		{"category with query", Criteria{Category: "Music", Query: "fest"}, []string{"1", "3"}},
		{"category with query for other category", Criteria{Category: "Sports", Query: "jazz"}, []string{"2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(source, tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if got := Filter(source, Criteria{Query: "jazz"}); !reflect.DeepEqual(got, source) {
		t.Errorf("expected source list unchanged, got %v", ids(got))
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		category string
		want     string
	}{
		{"select from none", "", "Music", "Music"},
		{"switch category", "Music", "Sports", "Sports"},
		{"toggle off", "Music", "Music", ""},
		{"select none stays none", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.current, tt.category); got != tt.want {
				t.Errorf("Select(%q, %q) = %q, want %q", tt.current, tt.category, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	if c, ok := Lookup("Tech"); !ok || c.ID != "5" {
		t.Errorf("expected Tech with id 5, got %+v ok=%v", c, ok)
	}
	if _, ok := Lookup("tech"); ok {
		t.Error("lookup should be case-sensitive")
	}
}
