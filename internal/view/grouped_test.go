package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-vendor-backend/internal/model"
)

func record(id int64, date string) model.PickupRecord {
	var ts model.Timestamp
	_ = ts.UnmarshalJSON([]byte(`"` + date + `"`))
	return model.PickupRecord{ID: id, PickupDate: &ts}
}

func titles(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Title
	}
	return out
}

func TestSections_GroupsByDateInFirstSeenOrder(t *testing.T) {
	v := New(PickupDateKey)
	sections := v.Sections([]model.PickupRecord{
		record(1, "2024-01-05"),
		record(2, "2024-01-05"),
		record(3, "2024-01-06"),
		record(4, "2024-01-05"),
	})

	require.Len(t, sections, 2)
	assert.Equal(t, []string{"Jan 5, 2024", "Jan 6, 2024"}, titles(sections))
	assert.Len(t, sections[0].Records, 3)
	assert.Len(t, sections[1].Records, 1)
}

func TestSections_DefaultCollapseSeeding(t *testing.T) {
	v := New(PickupDateKey)
	sections := v.Sections([]model.PickupRecord{
		record(1, "2024-01-05"), // group A
		record(2, "2024-01-06"), // group B
		record(3, "2024-01-07"), // group C
	})

	require.Len(t, sections, 3)
	assert.False(t, sections[0].Collapsed, "first group defaults open")
	assert.True(t, sections[1].Collapsed)
	assert.True(t, sections[2].Collapsed)

	// Only the very first record defaults expanded.
	assert.True(t, v.RowExpanded(1))
	assert.False(t, v.RowExpanded(2))
	assert.False(t, v.RowExpanded(3))

	// Toggling B affects neither A nor C.
	v.ToggleSection("Jan 6, 2024")
	sections = v.Sections([]model.PickupRecord{
		record(1, "2024-01-05"),
		record(2, "2024-01-06"),
		record(3, "2024-01-07"),
	})
	assert.False(t, sections[0].Collapsed)
	assert.False(t, sections[1].Collapsed)
	assert.True(t, sections[2].Collapsed)
}

func TestSections_StateSurvivesRefresh(t *testing.T) {
	v := New(PickupDateKey)
	v.Sections([]model.PickupRecord{record(1, "2024-01-05"), record(2, "2024-01-06")})

	v.ToggleSection("Jan 5, 2024") // close the open first group
	v.ToggleRow(2)                 // expand a later row

	// A refresh delivers the same records again, plus a new group.
	sections := v.Sections([]model.PickupRecord{
		record(1, "2024-01-05"),
		record(2, "2024-01-06"),
		record(3, "2024-01-07"),
	})

	require.Len(t, sections, 3)
	assert.True(t, sections[0].Collapsed, "user's explicit collapse must survive refresh")
	assert.True(t, v.RowExpanded(2), "user's explicit expand must survive refresh")
	assert.True(t, sections[2].Collapsed, "newly seen group defaults collapsed")
}

func TestPickupDateKey_Fallbacks(t *testing.T) {
	var created model.Timestamp
	_ = created.UnmarshalJSON([]byte(`"2024-02-01 08:00:00"`))

	assert.Equal(t, "Jan 5, 2024", PickupDateKey(record(1, "2024-01-05")))
	assert.Equal(t, "Feb 1, 2024", PickupDateKey(model.PickupRecord{ID: 2, CreatedAt: &created}))
	assert.Equal(t, "Unknown", PickupDateKey(model.PickupRecord{ID: 3}))
}
