package pdfdoc

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table is reconstructed tabular data: an ordered sequence of rows, each an
// ordered sequence of cells. Cells are nullable in the wire format; this
// implementation always emits strings for cells it reconstructs.
type Table [][]*string

// cellGap is the horizontal whitespace, in text-space units, treated as a
// column boundary when grouping a row's text chunks into cells.
const cellGap = 8.0

// PageTables reconstructs tables on the given 1-based page number from the
// row-oriented text layout. Lines with a single cell are treated as prose;
// each run of consecutive multi-cell lines forms one table.
func (d *Document) PageTables(pageNum int) (tables []Table, err error) {
	defer recoverTo(&err)

	p := d.reader.Page(pageNum)
	if p.V.IsNull() {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, err
	}
	return tablesFromRows(rows), nil
}

func tablesFromRows(rows pdf.Rows) []Table {
	ordered := make([]*pdf.Row, len(rows))
	copy(ordered, rows)
	// Top of page first.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position > ordered[j].Position
	})

	var tables []Table
	var current Table
	for _, row := range ordered {
		cells := splitCells(row.Content)
		if len(cells) >= 2 {
			current = append(current, cells)
			continue
		}
		if len(current) > 0 {
			tables = append(tables, current)
			current = nil
		}
	}
	if len(current) > 0 {
		tables = append(tables, current)
	}
	return tables
}

// splitCells groups a row's text chunks into cells, starting a new cell
// wherever the horizontal gap to the previous chunk exceeds cellGap.
func splitCells(texts pdf.TextHorizontal) []*string {
	if len(texts) == 0 {
		return nil
	}

	ordered := make([]pdf.Text, len(texts))
	copy(ordered, texts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].X < ordered[j].X
	})

	var cells []*string
	var b strings.Builder
	endX := ordered[0].X
	for i, t := range ordered {
		if i > 0 && t.X-endX > cellGap {
			cell := strings.TrimSpace(b.String())
			cells = append(cells, &cell)
			b.Reset()
		}
		b.WriteString(t.S)
		if t.X+t.W > endX {
			endX = t.X + t.W
		}
	}
	last := strings.TrimSpace(b.String())
	cells = append(cells, &last)
	return cells
}
