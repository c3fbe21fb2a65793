package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"pkt.systems/mdtree"
)

const (
	indentStep   = 2
	minWrapWidth = 20
)

// writeTree prints a readable outline of the block tree: one node per
// line, children indented, paragraph text wrapped to the output width.
func writeTree(w io.Writer, doc *mdtree.Document, width int) {
	fmt.Fprintln(w, "Document")
	for _, child := range doc.Children {
		writeBlock(w, child, 1, width)
	}
}

func writeBlock(w io.Writer, block mdtree.Block, depth, width int) {
	switch node := block.(type) {
	case *mdtree.Heading:
		emit(w, depth, fmt.Sprintf("Heading level=%d %s", node.Level, mdtree.Text(node.Children)))
	case *mdtree.Quote:
		emit(w, depth, "Quote")
		for _, child := range node.Children {
			writeBlock(w, child, depth+1, width)
		}
	case *mdtree.Paragraph:
		emit(w, depth, "Paragraph")
		emit(w, depth+1, wordwrap.String(mdtree.Text(node.Children), wrapWidth(width, depth+1)))
	case *mdtree.BlockCode:
		emit(w, depth, fmt.Sprintf("BlockCode language=%q", node.Language))
		content := strings.TrimSuffix(mdtree.Text(node.Children), "\n")
		if content != "" {
			emit(w, depth+1, content)
		}
	case *mdtree.List:
		label := "List"
		if node.Ordered {
			label = fmt.Sprintf("List start=%d", node.Start)
		}
		emit(w, depth, label)
		for _, child := range node.Children {
			writeBlock(w, child, depth+1, width)
		}
	case *mdtree.ListItem:
		emit(w, depth, "ListItem "+mdtree.Text(node.Children))
	case *mdtree.Table:
		emit(w, depth, fmt.Sprintf("Table header=%t align=%s", node.HasHeader, alignLabels(node.ColumnAlign)))
		writeTableGrid(w, node, depth+1)
	case *mdtree.FootnoteBlock:
		emit(w, depth, "FootnoteBlock")
		for _, child := range node.Children {
			writeBlock(w, child, depth+1, width)
		}
	case *mdtree.FootnoteEntry:
		emit(w, depth, fmt.Sprintf("FootnoteEntry [%s]: %s", node.Key, node.Value))
	case *mdtree.Separator:
		emit(w, depth, fmt.Sprintf("Separator %q", strings.TrimSuffix(node.Line, "\n")))
	default:
		emit(w, depth, fmt.Sprintf("%T", block))
	}
}

// writeTableGrid pads every cell to its column's display width so the
// grid lines up regardless of cell content.
func writeTableGrid(w io.Writer, table *mdtree.Table, depth int) {
	widths := table.ColumnWidths()
	for _, child := range table.Children {
		row, ok := child.(*mdtree.TableRow)
		if !ok {
			continue
		}
		cells := make([]string, 0, len(row.Children))
		for i, c := range row.Children {
			cell, ok := c.(*mdtree.TableCell)
			if !ok {
				continue
			}
			text := mdtree.Text(cell.Children)
			if i < len(widths) {
				text = runewidth.FillRight(text, widths[i])
			}
			cells = append(cells, text)
		}
		emit(w, depth, "| "+strings.Join(cells, " | ")+" |")
	}
}

func writeFootnotes(w io.Writer, doc *mdtree.Document) {
	if len(doc.Footnotes) == 0 {
		return
	}
	keys := make([]string, 0, len(doc.Footnotes))
	for key := range doc.Footnotes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Fprintln(w, "Footnotes")
	for _, key := range keys {
		emit(w, 1, fmt.Sprintf("[%s]: %s", key, doc.Footnotes[key]))
	}
}

func emit(w io.Writer, depth int, text string) {
	fmt.Fprintln(w, indent.String(text, uint(depth*indentStep)))
}

func wrapWidth(width, depth int) int {
	w := width - depth*indentStep
	if w < minWrapWidth {
		return minWrapWidth
	}
	return w
}

func alignLabels(aligns []mdtree.Align) string {
	labels := make([]string, 0, len(aligns))
	for _, a := range aligns {
		labels = append(labels, a.String())
	}
	return "[" + strings.Join(labels, ",") + "]"
}
