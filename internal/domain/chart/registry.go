package chart

import (
	"fmt"
	"slices"

	"github.com/okian/hoopboard/internal/domain/prepared"
)

// Entry binds a chart id to its renderer. Row is the layout row on the page.
type Entry struct {
	ID     string
	Row    int
	Render Renderer
}

// Registry is the ordered, immutable set of dashboard charts.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry validates entries and keeps their order.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{entries: make([]Entry, 0, len(entries)), index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if e.ID == "" || e.Render == nil {
			return nil, fmt.Errorf("%w: entry %q", ErrInvalidEntry, e.ID)
		}
		if _, dup := r.index[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChart, e.ID)
		}
		r.index[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return r, nil
}

// Entries returns the charts in registration order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// IDs returns the chart ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Rows groups the entries by layout row, rows ascending.
func (r *Registry) Rows() [][]Entry {
	byRow := make(map[int][]Entry)
	var order []int
	for _, e := range r.entries {
		if _, ok := byRow[e.Row]; !ok {
			order = append(order, e.Row)
		}
		byRow[e.Row] = append(byRow[e.Row], e)
	}
	slices.Sort(order)
	rows := make([][]Entry, len(order))
	for i, row := range order {
		rows[i] = byRow[row]
	}
	return rows
}

// Lookup finds the entry for id.
func (r *Registry) Lookup(id string) (Entry, error) {
	i, ok := r.index[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownChart, id)
	}
	return r.entries[i], nil
}

// Render looks up id and renders it from s.
func (r *Registry) Render(id string, s *prepared.Snapshot) (Spec, error) {
	e, err := r.Lookup(id)
	if err != nil {
		return Spec{}, err
	}
	spec := e.Render(s)
	spec.ID = e.ID
	return spec, nil
}
