// Package mdtree parses block-level Markdown into a typed node tree.
//
// The parser consumes newline-terminated lines, partitions them into runs
// at blank lines, and dispatches each run through an ordered registry of
// block matchers: Heading, Quote, BlockCode, Separator, List, Table,
// FootnoteBlock, with Paragraph as the unconditional fallback. Container
// blocks (Quote, nested List) re-enter the dispatch loop recursively, so
// the result is a full block tree rooted at a Document.
//
// Core properties:
//   - Every non-blank input line ends up in exactly one node
//   - First matching block type wins; priority is registration order
//   - Leaf text is handed to a pluggable inline tokenizer
//   - Nodes are immutable once Parse returns
//
// Example:
//
//	doc, err := mdtree.New().ParseString("# Hello\n\nMarkdown in, tree out.\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, block := range doc.Children {
//		fmt.Printf("%T\n", block)
//	}
//
// Span-level parsing is out of scope: the parser calls an InlineTokenizer
// at leaf boundaries and treats its output as opaque. Rendering is left to
// consumers walking the tree.
package mdtree
