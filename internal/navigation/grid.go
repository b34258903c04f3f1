// Package navigation computes keyboard movement across a grid made of
// sections with differing column counts.
//
// Items are addressed by their linear index across every section. Each
// section lays its items out left to right, wrapping every Width items; the
// last row of a section may be short. Visual rows are numbered continuously
// across sections.
package navigation

import "fmt"

// GridSectionData describes one section of a grid.
type GridSectionData struct {
	StartIndex      int
	StartRowIndex   int
	AmountInSection int
	Width           int
}

// Rows returns the number of visual rows in the section.
func (s GridSectionData) Rows() int {
	if s.AmountInSection == 0 {
		return 0
	}
	return (s.AmountInSection + s.Width - 1) / s.Width
}

// rowAmount returns the item count of row r of the section.
func (s GridSectionData) rowAmount(r int) int {
	if r+1 == s.Rows() {
		if rem := s.AmountInSection % s.Width; rem != 0 {
			return rem
		}
	}
	return s.Width
}

// SectionSize is the item count and column count of one section.
type SectionSize struct {
	Amount int
	Width  int
}

// Sections lays out sections contiguously in index and row space.
func Sections(sizes ...SectionSize) []GridSectionData {
	out := make([]GridSectionData, 0, len(sizes))
	index, row := 0, 0
	for _, size := range sizes {
		width := size.Width
		if width < 1 {
			width = 1
		}
		s := GridSectionData{
			StartIndex:      index,
			StartRowIndex:   row,
			AmountInSection: size.Amount,
			Width:           width,
		}
		out = append(out, s)
		index += s.AmountInSection
		row += s.Rows()
	}
	return out
}

// GridRowData is the row neighbourhood of one item.
type GridRowData struct {
	RowIndex    int
	ColumnIndex int
	AmountInRow int

	// PreviousAmount and NextAmount are the item counts of the adjacent
	// rows, zero when there is none.
	PreviousAmount int
	NextAmount     int
}

// HasPrevious reports whether a row exists above.
func (d GridRowData) HasPrevious() bool { return d.PreviousAmount > 0 }

// HasNext reports whether a row exists below.
func (d GridRowData) HasNext() bool { return d.NextAmount > 0 }

// GridOffset is a movement result: the destination row and the number of
// items to step from the current index to reach the destination item.
type GridOffset struct {
	RowIndex int
	Offset   int
}

// RowData locates currentIndex within sections.
//
// currentIndex must be within the total item count; callers derive it from
// the same items used to build sections, so a violation panics.
func RowData(sections []GridSectionData, currentIndex int) GridRowData {
	si := -1
	for i, s := range sections {
		if s.StartIndex+s.AmountInSection >= currentIndex+1 {
			si = i
			break
		}
	}
	if currentIndex < 0 || si < 0 {
		panic(fmt.Sprintf("navigation: index %d outside grid", currentIndex))
	}

	s := sections[si]
	if s.Width < 1 {
		panic(fmt.Sprintf("navigation: section %d has width %d", si, s.Width))
	}
	itemInSection := currentIndex - s.StartIndex
	rowInSection := itemInSection / s.Width

	d := GridRowData{
		RowIndex:    s.StartRowIndex + rowInSection,
		ColumnIndex: itemInSection % s.Width,
		AmountInRow: s.rowAmount(rowInSection),
	}

	if rowInSection > 0 {
		d.PreviousAmount = s.rowAmount(rowInSection - 1)
	} else {
		for i := si - 1; i >= 0; i-- {
			if prev := sections[i]; prev.Rows() > 0 {
				d.PreviousAmount = prev.rowAmount(prev.Rows() - 1)
				break
			}
		}
	}

	if rowInSection+1 < s.Rows() {
		d.NextAmount = s.rowAmount(rowInSection + 1)
	} else {
		for i := si + 1; i < len(sections); i++ {
			if next := sections[i]; next.Rows() > 0 {
				d.NextAmount = next.rowAmount(0)
				break
			}
		}
	}

	return d
}

// GridUpOffset returns the move to the row above, keeping the visual column
// and landing on the last item when the row above is shorter. The offset
// counts steps backwards from currentIndex.
func GridUpOffset(sections []GridSectionData, currentIndex int) (GridOffset, bool) {
	d := RowData(sections, currentIndex)
	if !d.HasPrevious() {
		return GridOffset{}, false
	}
	column := d.ColumnIndex
	target := min(column, d.PreviousAmount-1)
	return GridOffset{
		RowIndex: d.RowIndex - 1,
		Offset:   column + (d.PreviousAmount - target),
	}, true
}

// GridDownOffset returns the move to the row below, keeping the visual
// column and landing on the last item when the row below is shorter. The
// offset counts steps forwards from currentIndex.
func GridDownOffset(sections []GridSectionData, currentIndex int) (GridOffset, bool) {
	d := RowData(sections, currentIndex)
	if !d.HasNext() {
		return GridOffset{}, false
	}
	column := d.ColumnIndex
	return GridOffset{
		RowIndex: d.RowIndex + 1,
		Offset:   (d.AmountInRow - (column + 1)) + min(column+1, d.NextAmount),
	}, true
}
