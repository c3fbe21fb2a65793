package mdtree

import (
	"bytes"
	"strings"
	"testing"
)

func mustParse(t *testing.T, lines []string) *Document {
	t.Helper()
	doc, err := New().Parse(lines)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestBlankLinesDelimitRuns(t *testing.T) {
	doc := mustParse(t, []string{
		"first\n",
		"\n",
		"second\n",
		"still second\n",
		"\n",
		"\n",
		"third\n",
	})
	if len(doc.Children) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Children))
	}
	want := []string{"first", "second still second", "third"}
	for i, block := range doc.Children {
		para, ok := block.(*Paragraph)
		if !ok {
			t.Fatalf("block %d: expected *Paragraph, got %T", i, block)
		}
		if got := Text(para.Children); got != want[i] {
			t.Fatalf("block %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestFallbackParagraphJoinsAndTrims(t *testing.T) {
	doc := mustParse(t, []string{"  some\n", "continuous\n", "lines  \n"})
	if len(doc.Children) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Children))
	}
	para, ok := doc.Children[0].(*Paragraph)
	if !ok {
		t.Fatalf("expected *Paragraph, got %T", doc.Children[0])
	}
	if got := Text(para.Children); got != "some continuous lines" {
		t.Fatalf("unexpected paragraph text %q", got)
	}
}

func TestPriorityDeterminism(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		// setext heading outranks quote even when the run opens like one
		{"heading over quote", []string{"> quoted\n", "---\n"}, "*mdtree.Heading"},
		// separator outranks the list leader heuristic
		{"separator over list", []string{"* * *\n"}, "*mdtree.Separator"},
		// a lone === run is single-line, so the setext matcher passes on it
		{"separator takes bare equals", []string{"===\n"}, "*mdtree.Separator"},
		// list leader outranks the table pipe heuristic
		{"list over table", []string{"- | a |\n"}, "*mdtree.List"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.lines)
			if len(doc.Children) != 1 {
				t.Fatalf("expected 1 block, got %d", len(doc.Children))
			}
			if got := typeName(doc.Children[0]); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func typeName(b Block) string {
	switch b.(type) {
	case *Heading:
		return "*mdtree.Heading"
	case *Quote:
		return "*mdtree.Quote"
	case *Paragraph:
		return "*mdtree.Paragraph"
	case *BlockCode:
		return "*mdtree.BlockCode"
	case *List:
		return "*mdtree.List"
	case *Table:
		return "*mdtree.Table"
	case *FootnoteBlock:
		return "*mdtree.FootnoteBlock"
	case *Separator:
		return "*mdtree.Separator"
	default:
		return "unknown"
	}
}

func TestFootnoteRegistration(t *testing.T) {
	doc := mustParse(t, []string{"[1]: http://example.com\n"})
	if got := doc.Footnotes["1"]; got != "http://example.com" {
		t.Fatalf("expected footnote value, got %q", got)
	}
	block, ok := doc.Children[0].(*FootnoteBlock)
	if !ok {
		t.Fatalf("expected *FootnoteBlock, got %T", doc.Children[0])
	}
	entry, ok := block.Children[0].(*FootnoteEntry)
	if !ok {
		t.Fatalf("expected *FootnoteEntry, got %T", block.Children[0])
	}
	if entry.Key != "1" || entry.Value != "http://example.com" {
		t.Fatalf("unexpected entry %q: %q", entry.Key, entry.Value)
	}
}

func TestFootnoteRegistersThroughQuote(t *testing.T) {
	doc := mustParse(t, []string{"> [ref]: value here\n"})
	if got := doc.Footnotes["ref"]; got != "value here" {
		t.Fatalf("expected nested footnote registered, got %q", got)
	}
}

type calloutType struct{}

func (calloutType) Match(lines []string) bool {
	return strings.HasPrefix(lines[0], "!!! ")
}

func (calloutType) Build(lines []string, ctx Context) (Block, error) {
	text := strings.TrimPrefix(strings.TrimSpace(lines[0]), "!!! ")
	return &Paragraph{Children: ctx.Inline("callout:" + text)}, nil
}

func TestRegisterInsertsAfterHighestPriority(t *testing.T) {
	p := New()
	p.Register(calloutType{})
	types := p.BlockTypes()
	if len(types) != 8 {
		t.Fatalf("expected 8 registered types, got %d", len(types))
	}
	if types[0] != HeadingType {
		t.Fatalf("expected HeadingType first, got %v", types[0])
	}
	if types[1] != (calloutType{}) {
		t.Fatalf("expected custom type at position 1, got %v", types[1])
	}
	doc, err := p.Parse([]string{"!!! warning\n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	para, ok := doc.Children[0].(*Paragraph)
	if !ok {
		t.Fatalf("expected custom-built *Paragraph, got %T", doc.Children[0])
	}
	if got := Text(para.Children); got != "callout:warning" {
		t.Fatalf("unexpected custom build output %q", got)
	}
}

func TestUnregisterRestoresOriginalSequence(t *testing.T) {
	p := New()
	original := p.BlockTypes()
	p.Register(calloutType{})
	p.Unregister(calloutType{})
	restored := p.BlockTypes()
	if len(restored) != len(original) {
		t.Fatalf("expected %d types, got %d", len(original), len(restored))
	}
	for i := range original {
		if restored[i] != original[i] {
			t.Fatalf("type %d: expected %v, got %v", i, original[i], restored[i])
		}
	}
	doc, err := p.Parse([]string{"!!! warning\n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	para, ok := doc.Children[0].(*Paragraph)
	if !ok {
		t.Fatalf("expected fallback *Paragraph, got %T", doc.Children[0])
	}
	if got := Text(para.Children); got != "!!! warning" {
		t.Fatalf("expected verbatim fallback text, got %q", got)
	}
}

func TestUnregisterBuiltinDisablesIt(t *testing.T) {
	p := New()
	p.Unregister(SeparatorType)
	doc, err := p.Parse([]string{"---\n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := doc.Children[0].(*Paragraph); !ok {
		t.Fatalf("expected *Paragraph after unregister, got %T", doc.Children[0])
	}
}

func TestWithInlineTokenizer(t *testing.T) {
	upper := func(text string) []Inline {
		return []Inline{RawText{Text: strings.ToUpper(text)}}
	}
	doc, err := New(WithInlineTokenizer(upper)).Parse([]string{"hello\n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	para := doc.Children[0].(*Paragraph)
	if got := Text(para.Children); got != "HELLO" {
		t.Fatalf("expected tokenizer output, got %q", got)
	}
}

func TestInlineTokenizerNotCalledForCode(t *testing.T) {
	called := 0
	counting := func(text string) []Inline {
		called++
		return []Inline{RawText{Text: text}}
	}
	doc, err := New(WithInlineTokenizer(counting)).Parse([]string{
		"```\n", "raw\n", "```\n",
		"\n",
		"[1]: value\n",
		"\n",
		"---\n",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if called != 0 {
		t.Fatalf("expected no inline tokenization, got %d calls", called)
	}
	if len(doc.Children) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Children))
	}
}

func TestWithBlockTypesRestrictsRegistry(t *testing.T) {
	p := New(WithBlockTypes(HeadingType))
	doc, err := p.Parse([]string{"# Title\n", "\n", "---\n"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := doc.Children[0].(*Heading); !ok {
		t.Fatalf("expected *Heading, got %T", doc.Children[0])
	}
	if _, ok := doc.Children[1].(*Paragraph); !ok {
		t.Fatalf("expected separator to fall back to *Paragraph, got %T", doc.Children[1])
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("a\nb\nc")
	want := []string{"a\n", "b\n", "c"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
	if got := SplitLines(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestParseReader(t *testing.T) {
	doc, err := New().ParseReader(strings.NewReader("# Title\n\nbody\n"))
	if err != nil {
		t.Fatalf("parse reader: %v", err)
	}
	if len(doc.Children) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Children))
	}
}

func TestParseReaderRejectsBinary(t *testing.T) {
	_, err := New().ParseReader(bytes.NewReader([]byte{'a', 0x00, 'b'}))
	if err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

// Every non-blank input line must end up in exactly one block: the blocks
// appear in reading order and their count matches the run structure.
func TestExhaustivePartition(t *testing.T) {
	lines := []string{
		"# Title\n",
		"\n",
		"intro paragraph\n",
		"\n",
		"> quoted\n",
		"\n",
		"```sh\n",
		"ls\n",
		"```\n",
		"\n",
		"---\n",
		"\n",
		"- one\n",
		"- two\n",
		"\n",
		"| a |\n",
		"\n",
		"[x]: y\n",
	}
	doc := mustParse(t, lines)
	want := []string{
		"*mdtree.Heading",
		"*mdtree.Paragraph",
		"*mdtree.Quote",
		"*mdtree.BlockCode",
		"*mdtree.Separator",
		"*mdtree.List",
		"*mdtree.Table",
		"*mdtree.FootnoteBlock",
	}
	if len(doc.Children) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(doc.Children))
	}
	for i, block := range doc.Children {
		if got := typeName(block); got != want[i] {
			t.Fatalf("block %d: expected %s, got %s", i, want[i], got)
		}
	}
}
