package mdtree

// Block is the interface shared by all block-level nodes. The set of
// implementations is closed; consumers switch on the concrete type.
type Block interface {
	block()
}

// Document is the root node. Footnotes collects every FootnoteEntry found
// anywhere in the tree during construction, keyed by entry key.
type Document struct {
	Footnotes map[string]string
	Children  []Block
}

// Heading is an ATX (`## text`) or setext (`text` over `===`/`---`)
// heading. Level is 1..6.
type Heading struct {
	Level    int
	Children []Inline
}

// Quote is a block quote. Its children are a full nested block tree built
// by re-running the dispatch loop over the de-prefixed lines.
type Quote struct {
	Children []Block
}

// Paragraph is the fallback block; its text is the whitespace-joined,
// trimmed run content.
type Paragraph struct {
	Children []Inline
}

// BlockCode is a fenced or 4-space-indented code block. Children holds a
// single RawText; code content is never inline-tokenized.
type BlockCode struct {
	Language string
	Children []Inline
}

// List is an ordered or unordered list. Children holds ListItem and
// nested List nodes in input order. Start is the first ordered index and
// is meaningful only when Ordered is true.
type List struct {
	Start    int
	Ordered  bool
	Children []Block
}

// ListItem is a single list item with its leader stripped.
type ListItem struct {
	Children []Inline
}

// Table is a pipe table. ColumnAlign holds one alignment per declared
// column and is shared by reference with every TableRow; when there is no
// header delimiter it defaults to a single AlignLeft entry.
type Table struct {
	HasHeader   bool
	ColumnAlign []Align
	Children    []Block
}

// TableRow is one table line. RowAlign aliases the owning table's
// ColumnAlign slice; it is read-only after construction.
type TableRow struct {
	RowAlign []Align
	Children []Block
}

// TableCell is one `|`-delimited segment. Align is AlignNone when the row
// has more cells than the table declares columns.
type TableCell struct {
	Align    Align
	Children []Inline
}

// FootnoteBlock groups consecutive footnote entries.
type FootnoteBlock struct {
	Children []Block
}

// FootnoteEntry is a `[key]: value` line, stored verbatim. Entries also
// register themselves in the enclosing Document's footnote map.
type FootnoteEntry struct {
	Key   string
	Value string
}

// Separator is a horizontal rule. Line keeps the matched input verbatim.
type Separator struct {
	Line string
}

func (*Document) block()      {}
func (*Heading) block()       {}
func (*Quote) block()         {}
func (*Paragraph) block()     {}
func (*BlockCode) block()     {}
func (*List) block()          {}
func (*ListItem) block()      {}
func (*Table) block()         {}
func (*TableRow) block()      {}
func (*TableCell) block()     {}
func (*FootnoteBlock) block() {}
func (*FootnoteEntry) block() {}
func (*Separator) block()     {}

// Align is a table column alignment. AlignNone marks a cell with no
// declared alignment and is distinct from AlignLeft.
type Align uint8

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}
