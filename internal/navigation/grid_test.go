package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	got := Sections(SectionSize{Amount: 5, Width: 3}, SectionSize{Amount: 0, Width: 2}, SectionSize{Amount: 4, Width: 2})
	want := []GridSectionData{
		{StartIndex: 0, StartRowIndex: 0, AmountInSection: 5, Width: 3},
		{StartIndex: 5, StartRowIndex: 2, AmountInSection: 0, Width: 2},
		{StartIndex: 5, StartRowIndex: 2, AmountInSection: 4, Width: 2},
	}
	assert.Equal(t, want, got)
}

func TestRowData(t *testing.T) {
	sections := Sections(SectionSize{Amount: 5, Width: 3}, SectionSize{Amount: 2, Width: 4})

	tests := []struct {
		name  string
		index int
		want  GridRowData
	}{
		{"first item", 0, GridRowData{RowIndex: 0, ColumnIndex: 0, AmountInRow: 3, PreviousAmount: 0, NextAmount: 2}},
		{"short last row", 4, GridRowData{RowIndex: 1, ColumnIndex: 1, AmountInRow: 2, PreviousAmount: 3, NextAmount: 2}},
		{"next section", 6, GridRowData{RowIndex: 2, ColumnIndex: 1, AmountInRow: 2, PreviousAmount: 2, NextAmount: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RowData(sections, tt.index))
		})
	}
}

func TestSingleRowBlocksBothWays(t *testing.T) {
	sections := Sections(SectionSize{Amount: 2, Width: 3})
	_, ok := GridDownOffset(sections, 1)
	assert.False(t, ok)
	_, ok = GridUpOffset(sections, 1)
	assert.False(t, ok)
}

func TestDownIntoShortRow(t *testing.T) {
	sections := Sections(SectionSize{Amount: 5, Width: 3})

	tests := []struct {
		index int
		want  GridOffset
	}{
		{0, GridOffset{RowIndex: 1, Offset: 3}},
		{1, GridOffset{RowIndex: 1, Offset: 3}},
		{2, GridOffset{RowIndex: 1, Offset: 2}},
	}
	for _, tt := range tests {
		got, ok := GridDownOffset(sections, tt.index)
		require.True(t, ok)
		assert.Equal(t, tt.want, got, "index %d", tt.index)
	}

	_, ok := GridDownOffset(sections, 3)
	assert.False(t, ok, "last row has nothing below")

	got, ok := GridDownOffset(Sections(SectionSize{Amount: 4, Width: 3}), 2)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 1, Offset: 1}, got, "lands on the single item below")
}

func TestUpFromShortRow(t *testing.T) {
	sections := Sections(SectionSize{Amount: 7, Width: 3})

	got, ok := GridUpOffset(sections, 6)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 1, Offset: 3}, got)

	got, ok = GridUpOffset(sections, 4)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 0, Offset: 3}, got)
}

func TestCrossSectionSameWidth(t *testing.T) {
	sections := Sections(SectionSize{Amount: 3, Width: 3}, SectionSize{Amount: 3, Width: 3})

	got, ok := GridDownOffset(sections, 1)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 1, Offset: 3}, got)

	got, ok = GridUpOffset(sections, 4)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 0, Offset: 3}, got)
}

func TestCrossSectionDifferentWidth(t *testing.T) {
	wideThenNarrow := Sections(SectionSize{Amount: 4, Width: 4}, SectionSize{Amount: 6, Width: 2})

	got, ok := GridDownOffset(wideThenNarrow, 3)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 1, Offset: 2}, got, "column 3 clamps to column 1")

	got, ok = GridDownOffset(wideThenNarrow, 0)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 1, Offset: 4}, got)

	got, ok = GridUpOffset(wideThenNarrow, 5)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 0, Offset: 4}, got, "column 1 keeps column 1")

	narrowThenWide := Sections(SectionSize{Amount: 2, Width: 2}, SectionSize{Amount: 5, Width: 5})
	got, ok = GridUpOffset(narrowThenWide, 6)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 0, Offset: 5}, got, "column 4 clamps to the last item above")
}

func TestSkipsEmptySections(t *testing.T) {
	sections := Sections(SectionSize{Amount: 3, Width: 3}, SectionSize{Amount: 0, Width: 3}, SectionSize{Amount: 3, Width: 3})

	got, ok := GridDownOffset(sections, 1)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 1, Offset: 3}, got)

	got, ok = GridUpOffset(sections, 3)
	require.True(t, ok)
	assert.Equal(t, GridOffset{RowIndex: 0, Offset: 3}, got)
}

func TestFirstRowHasNothingAbove(t *testing.T) {
	for _, n := range []int{1, 3, 10} {
		sections := Sections(SectionSize{Amount: n, Width: 5})
		for i := 0; i < min(n, 5); i++ {
			_, ok := GridUpOffset(sections, i)
			assert.False(t, ok, "n=%d index=%d", n, i)
		}
	}
}

func TestOutOfRangePanics(t *testing.T) {
	sections := Sections(SectionSize{Amount: 3, Width: 3})
	assert.Panics(t, func() { RowData(sections, 3) })
	assert.Panics(t, func() { RowData(sections, -1) })
	assert.Panics(t, func() { RowData(nil, 0) })
}
