package view

import (
	"sync"

	"pickup-vendor-backend/internal/model"
)

// DateKey extracts the grouping key for one record.
type DateKey func(model.PickupRecord) string

// sectionDateFormat matches the mobile client's header style, e.g. "Jan 5, 2024".
const sectionDateFormat = "Jan 2, 2006"

// PickupDateKey groups by the pickup date, falling back to the creation
// date, then to a fixed bucket for records with no usable date at all.
func PickupDateKey(r model.PickupRecord) string {
	if r.PickupDate != nil && !r.PickupDate.IsZero() {
		return r.PickupDate.Format(sectionDateFormat)
	}
	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		return r.CreatedAt.Format(sectionDateFormat)
	}
	return "Unknown"
}

// Section is one date group of records, in first-seen key order.
type Section struct {
	Title     string
	Collapsed bool
	Records   []model.PickupRecord
}

// GroupedView projects a flat record collection into date sections and
// owns the collapse/expand choices the user has made. Those choices are
// keyed by section title and record identity, never by position, so they
// survive pagination and refresh.
type GroupedView struct {
	dateKey DateKey

	mu               sync.Mutex
	sectionCollapsed map[string]bool
	rowExpanded      map[int64]bool
	seenSection      map[string]bool
	seenRow          map[int64]bool
	seededFirstGroup bool
	seededFirstRow   bool
}

// New creates a grouped view over the given date rule.
func New(dateKey DateKey) *GroupedView {
	return &GroupedView{
		dateKey:          dateKey,
		sectionCollapsed: make(map[string]bool),
		rowExpanded:      make(map[int64]bool),
		seenSection:      make(map[string]bool),
		seenRow:          make(map[int64]bool),
	}
}

// Sections groups records by their date key, preserving first-seen order
// of keys. New section titles and row identities get their one-time
// default state here: the very first group encountered defaults open and
// every later group collapsed; the very first record defaults expanded.
func (v *GroupedView) Sections(records []model.PickupRecord) []Section {
	v.mu.Lock()
	defer v.mu.Unlock()

	var order []string
	grouped := make(map[string][]model.PickupRecord)
	for _, r := range records {
		key := v.dateKey(r)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], r)

		if !v.seenSection[key] {
			v.seenSection[key] = true
			v.sectionCollapsed[key] = v.seededFirstGroup
			v.seededFirstGroup = true
		}
		if !v.seenRow[r.ID] {
			v.seenRow[r.ID] = true
			v.rowExpanded[r.ID] = !v.seededFirstRow
			v.seededFirstRow = true
		}
	}

	sections := make([]Section, 0, len(order))
	for _, key := range order {
		sections = append(sections, Section{
			Title:     key,
			Collapsed: v.sectionCollapsed[key],
			Records:   grouped[key],
		})
	}
	return sections
}

// ToggleSection flips one section's collapsed state. O(1), no cascade.
func (v *GroupedView) ToggleSection(title string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sectionCollapsed[title] = !v.sectionCollapsed[title]
}

// ToggleRow flips one record's expanded state. O(1), no cascade.
func (v *GroupedView) ToggleRow(id int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rowExpanded[id] = !v.rowExpanded[id]
}

// SectionCollapsed reports one section's collapsed state.
func (v *GroupedView) SectionCollapsed(title string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sectionCollapsed[title]
}

// RowExpanded reports one record's expanded state.
func (v *GroupedView) RowExpanded(id int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rowExpanded[id]
}
