package mdtree

// Inline is the interface shared by span-level nodes. The parser never
// inspects inline nodes beyond RawText; custom tokenizers may return
// their own implementations.
type Inline interface {
	inline()
}

// RawText is unformatted text. It is the only inline node the parser
// produces on its own (code block content and the default tokenizer).
type RawText struct {
	Text string
}

func (RawText) inline() {}

// InlineTokenizer turns a block's raw text into span-level nodes. It is
// an opaque collaborator: the parser calls it at leaf boundaries and
// stores whatever it returns.
type InlineTokenizer func(text string) []Inline

func rawTextTokenizer(text string) []Inline {
	return []Inline{RawText{Text: text}}
}

// Text returns the plain-text view of an inline sequence: the
// concatenation of all RawText nodes, ignoring anything else.
func Text(nodes []Inline) string {
	var out string
	for _, n := range nodes {
		if raw, ok := n.(RawText); ok {
			out += raw.Text
		}
	}
	return out
}
