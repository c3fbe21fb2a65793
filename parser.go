package mdtree

import (
	"io"
	"strings"
)

// BlockType couples a matcher with its builder. Match reports whether a
// buffered run of lines belongs to this block type; Build constructs the
// node for a run Match accepted. Implementations must not retain the
// lines slice.
type BlockType interface {
	Match(lines []string) bool
	Build(lines []string, ctx Context) (Block, error)
}

// Context gives builders access to the enclosing parse: the recursive
// dispatch loop, the inline tokenizer, and the ambient document.
type Context struct {
	parser *Parser
	doc    *Document
}

// Tokenize re-runs the block dispatch loop over lines, for container
// builders that nest full block trees.
func (c Context) Tokenize(lines []string) ([]Block, error) {
	return c.parser.tokenize(lines, c.doc)
}

// Inline hands text to the parse's inline tokenizer.
func (c Context) Inline(text string) []Inline {
	return c.parser.inline(text)
}

// Document returns the document under construction, or nil when parsing
// detached line runs.
func (c Context) Document() *Document {
	return c.doc
}

// Exported instances of the built-in block types, usable with Register
// and Unregister.
var (
	HeadingType   BlockType = headingType{}
	QuoteType     BlockType = quoteType{}
	BlockCodeType BlockType = blockCodeType{}
	SeparatorType BlockType = separatorType{}
	ListType      BlockType = listType{}
	TableType     BlockType = tableType{}
	FootnoteType  BlockType = footnoteType{}
)

func defaultBlockTypes() []BlockType {
	// Unambiguous delimiters first, structural heuristics after.
	return []BlockType{
		HeadingType,
		QuoteType,
		BlockCodeType,
		SeparatorType,
		ListType,
		TableType,
		FootnoteType,
	}
}

// Parser owns an ordered block type registry and an inline tokenizer.
// A Parser is reusable across documents but not safe for concurrent use;
// registry mutation must not overlap a running parse.
type Parser struct {
	types  []BlockType
	inline InlineTokenizer
}

// Option configures a Parser.
type Option func(*Parser)

// WithInlineTokenizer replaces the inline tokenizer called at leaf
// boundaries. The default wraps text in a single RawText node.
func WithInlineTokenizer(fn InlineTokenizer) Option {
	return func(p *Parser) {
		if fn != nil {
			p.inline = fn
		}
	}
}

// WithBlockTypes replaces the registry wholesale, in priority order. The
// Paragraph fallback is implicit and always last.
func WithBlockTypes(types ...BlockType) Option {
	return func(p *Parser) {
		p.types = append([]BlockType(nil), types...)
	}
}

// New creates a Parser with the built-in block types in their default
// priority order.
func New(opts ...Option) *Parser {
	p := &Parser{
		types:  defaultBlockTypes(),
		inline: rawTextTokenizer,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Register inserts a block type directly after the highest-priority slot,
// so custom types outrank every built-in except the first.
func (p *Parser) Register(t BlockType) {
	if t == nil {
		return
	}
	if len(p.types) == 0 {
		p.types = append(p.types, t)
		return
	}
	p.types = append(p.types, nil)
	copy(p.types[2:], p.types[1:len(p.types)-1])
	p.types[1] = t
}

// Unregister removes the first registry entry equal to t. Removing an
// absent type is a no-op.
func (p *Parser) Unregister(t BlockType) {
	for i, existing := range p.types {
		if existing == t {
			p.types = append(p.types[:i], p.types[i+1:]...)
			return
		}
	}
}

// BlockTypes returns a copy of the registry in priority order.
func (p *Parser) BlockTypes() []BlockType {
	return append([]BlockType(nil), p.types...)
}

// Parse builds a Document from newline-terminated lines. The final line
// may omit its newline. The footnote map is fully populated on return.
func (p *Parser) Parse(lines []string) (*Document, error) {
	doc := &Document{Footnotes: make(map[string]string)}
	children, err := p.tokenize(lines, doc)
	if err != nil {
		return nil, err
	}
	doc.Children = children
	return doc, nil
}

// ParseString splits src into lines and parses them.
func (p *Parser) ParseString(src string) (*Document, error) {
	return p.Parse(SplitLines(src))
}

// ParseReader reads all of r, validates that it looks like text, and
// parses it.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := ValidateInput(src); err != nil {
		return nil, err
	}
	return p.ParseString(string(src))
}

// tokenize is the dispatch driver: it buffers lines into runs delimited
// by blank lines and hands each run to the first matching block type,
// falling back to Paragraph.
func (p *Parser) tokenize(lines []string, doc *Document) ([]Block, error) {
	var blocks []Block
	var run []string
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		block, err := p.build(run, doc)
		if err != nil {
			return err
		}
		blocks = append(blocks, block)
		run = nil
		return nil
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		run = append(run, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (p *Parser) build(run []string, doc *Document) (Block, error) {
	ctx := Context{parser: p, doc: doc}
	for _, t := range p.types {
		if t.Match(run) {
			return t.Build(run, ctx)
		}
	}
	return ParagraphType.Build(run, ctx)
}

// SplitLines splits src into newline-terminated lines, the inbound form
// Parse expects. The final line keeps no newline when src does not end
// with one.
func SplitLines(src string) []string {
	var lines []string
	for len(src) > 0 {
		i := strings.IndexByte(src, '\n')
		if i < 0 {
			lines = append(lines, src)
			break
		}
		lines = append(lines, src[:i+1])
		src = src[i+1:]
	}
	return lines
}
