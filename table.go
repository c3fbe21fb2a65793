package mdtree

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type tableType struct{}

func (tableType) Match(lines []string) bool {
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		if len(body) < 2 || body[0] != '|' || body[len(body)-1] != '|' {
			return false
		}
	}
	return true
}

func (tableType) Build(lines []string, ctx Context) (Block, error) {
	table := &Table{}
	rows := lines
	if len(lines) > 1 && strings.Contains(lines[1], "---") {
		table.HasHeader = true
		table.ColumnAlign = parseDelimiterRow(lines[1])
		rows = make([]string, 0, len(lines)-1)
		rows = append(rows, lines[0])
		rows = append(rows, lines[2:]...)
	} else {
		table.ColumnAlign = []Align{AlignLeft}
	}
	children := make([]Block, 0, len(rows))
	for _, line := range rows {
		children = append(children, buildTableRow(line, table.ColumnAlign, ctx))
	}
	table.Children = children
	return table, nil
}

func buildTableRow(line string, rowAlign []Align, ctx Context) Block {
	cells := splitRow(line)
	children := make([]Block, 0, len(cells))
	for i, cell := range cells {
		align := AlignNone
		if i < len(rowAlign) {
			align = rowAlign[i]
		}
		children = append(children, &TableCell{
			Align:    align,
			Children: ctx.Inline(strings.TrimSpace(cell)),
		})
	}
	return &TableRow{RowAlign: rowAlign, Children: children}
}

func parseDelimiterRow(line string) []Align {
	segments := splitRow(line)
	aligns := make([]Align, 0, len(segments))
	for _, segment := range segments {
		aligns = append(aligns, parseAlign(strings.TrimSpace(segment)))
	}
	return aligns
}

func parseAlign(column string) Align {
	if strings.HasPrefix(column, ":---") && strings.HasSuffix(column, "---:") {
		return AlignCenter
	}
	if strings.HasSuffix(column, "---:") {
		return AlignRight
	}
	return AlignLeft
}

// splitRow splits a table line on `|`, excluding the leading and trailing
// pipes and the trailing newline.
func splitRow(line string) []string {
	body := strings.TrimSuffix(line, "\n")
	body = strings.TrimSuffix(strings.TrimPrefix(body, "|"), "|")
	return strings.Split(body, "|")
}

// ColumnWidths returns the display width of the widest cell text per
// column across all rows. Widths are terminal cells, not bytes, so CJK
// and combining input measure correctly.
func (t *Table) ColumnWidths() []int {
	var widths []int
	for _, child := range t.Children {
		row, ok := child.(*TableRow)
		if !ok {
			continue
		}
		for i, c := range row.Children {
			cell, ok := c.(*TableCell)
			if !ok {
				continue
			}
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if w := runewidth.StringWidth(Text(cell.Children)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}
