// Package catalog holds the pure category logic used to narrow an event
// list, shared by the terminal browser and the memory store.
package catalog

import "github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"

// Category is one entry of the category selector.
type Category struct {
	ID   string
	Name string
	Icon string
}

// Categories is the fixed selector set, in display order.
var Categories = []Category{
	{ID: "1", Name: "Music", Icon: "music"},
	{ID: "2", Name: "Sports", Icon: "futbol-o"},
	{ID: "3", Name: "Art", Icon: "paint-brush"},
	{ID: "4", Name: "Food", Icon: "cutlery"},
	{ID: "5", Name: "Tech", Icon: "laptop"},
}

// Lookup finds a selector category by exact name.
func Lookup(name string) (Category, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Criteria is the active narrowing of an event list.
// The zero value matches every event.
//
// Query is the search text the user typed. It is kept so it can be shown
// and carried across refreshes, but it does not take part in matching
// until the fields it should search are decided.
type Criteria struct {
	Category string
	Query    string
}

// FromFilter converts a store filter into criteria.
func FromFilter(f models.EventFilter) Criteria {
	return Criteria{Category: f.Category}
}

// Match reports whether ev satisfies c. Category is an exact,
// case-sensitive comparison and an empty category matches everything.
func (c Criteria) Match(ev models.Event) bool {
	return c.Category == "" || ev.Category == c.Category
}

// Filter returns the events matching c, preserving order. With no
// category the source slice is returned as is.
func Filter(events []models.Event, c Criteria) []models.Event {
	if c.Category == "" {
		return events
	}
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if c.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Select returns the active category after the user picks category.
// Picking the active category clears the selection; anything else
// becomes the sole active category.
func Select(current, category string) string {
	if category == current {
		return ""
	}
	return category
}
