package mdtree

import (
	"errors"
	"strings"
)

// ErrMissingDelimiter reports a heading build on a run without the `# `
// delimiter. The registry discipline makes this unreachable through
// Parse; hitting it means a builder was invoked on a run its matcher
// never accepted.
var ErrMissingDelimiter = errors.New("heading: missing delimiter")

// ParagraphType is the fallback block type. It is not part of the
// registry; the dispatch loop applies it to any run no matcher accepts.
var ParagraphType BlockType = paragraphType{}

const maxHeadingLevel = 6

type headingType struct{}

func (headingType) Match(lines []string) bool {
	// ATX heading
	if len(lines) == 1 {
		return strings.HasPrefix(lines[0], "#") && strings.Contains(lines[0], "# ")
	}
	// setext heading
	last := lines[len(lines)-1]
	return strings.HasPrefix(last, "---") || strings.HasPrefix(last, "===")
}

func (headingType) Build(lines []string, ctx Context) (Block, error) {
	var level int
	var content string
	if len(lines) == 1 {
		idx := strings.Index(lines[0], "# ")
		if idx < 0 {
			return nil, ErrMissingDelimiter
		}
		level = idx + 1
		if level > maxHeadingLevel {
			level = maxHeadingLevel
		}
		content = lines[0][idx+2:]
		if j := strings.Index(content, " #"); j >= 0 {
			content = content[:j]
		}
		content = strings.TrimSpace(content)
	} else {
		if strings.HasPrefix(lines[len(lines)-1], "=") {
			level = 1
		} else {
			level = 2
		}
		trimmed := make([]string, 0, len(lines)-1)
		for _, line := range lines[:len(lines)-1] {
			trimmed = append(trimmed, strings.TrimSpace(line))
		}
		content = strings.Join(trimmed, " ")
	}
	return &Heading{Level: level, Children: ctx.Inline(content)}, nil
}

type quoteType struct{}

func (quoteType) Match(lines []string) bool {
	return strings.HasPrefix(lines[0], "> ")
}

func (quoteType) Build(lines []string, ctx Context) (Block, error) {
	content := make([]string, 0, len(lines))
	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, "> "); ok {
			content = append(content, rest)
		} else {
			// lazy continuation
			content = append(content, line)
		}
	}
	children, err := ctx.Tokenize(content)
	if err != nil {
		return nil, err
	}
	return &Quote{Children: children}, nil
}

type blockCodeType struct{}

func (blockCodeType) Match(lines []string) bool {
	if strings.HasPrefix(lines[0], "```") && isClosingFence(lines[len(lines)-1]) {
		return true
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "    ") {
			return false
		}
	}
	return true
}

func (blockCodeType) Build(lines []string, ctx Context) (Block, error) {
	var language, content string
	if strings.HasPrefix(lines[0], "```") {
		language = strings.TrimSpace(lines[0])[3:]
		// a lone fence line opens and closes an empty block
		if len(lines) > 1 {
			content = strings.Join(lines[1:len(lines)-1], "")
		}
	} else {
		stripped := make([]string, 0, len(lines))
		for _, line := range lines {
			stripped = append(stripped, line[4:])
		}
		content = strings.Join(stripped, "")
	}
	return &BlockCode{Language: language, Children: []Inline{RawText{Text: content}}}, nil
}

// isClosingFence accepts the bare form without a newline so a fence can
// close on the final line of input.
func isClosingFence(line string) bool {
	return strings.TrimSuffix(line, "\n") == "```"
}

type separatorType struct{}

var separatorPatterns = map[string]struct{}{
	"---":   {},
	"* * *": {},
	"***":   {},
	"===":   {},
}

func (separatorType) Match(lines []string) bool {
	if len(lines) != 1 {
		return false
	}
	_, ok := separatorPatterns[strings.TrimSuffix(lines[0], "\n")]
	return ok
}

func (separatorType) Build(lines []string, ctx Context) (Block, error) {
	return &Separator{Line: lines[0]}, nil
}

type footnoteType struct{}

func (footnoteType) Match(lines []string) bool {
	for _, line := range lines {
		content := strings.TrimSpace(line)
		if !strings.HasPrefix(content, "[") || !strings.Contains(content, "]:") {
			return false
		}
	}
	return true
}

func (footnoteType) Build(lines []string, ctx Context) (Block, error) {
	entries := make([]Block, 0, len(lines))
	for _, line := range lines {
		left, right, _ := strings.Cut(strings.TrimSpace(line), "]:")
		entry := &FootnoteEntry{
			Key:   left[1:],
			Value: strings.TrimSpace(right),
		}
		if doc := ctx.Document(); doc != nil {
			doc.Footnotes[entry.Key] = entry.Value
		}
		entries = append(entries, entry)
	}
	return &FootnoteBlock{Children: entries}, nil
}

type paragraphType struct{}

func (paragraphType) Match(lines []string) bool {
	return true
}

func (paragraphType) Build(lines []string, ctx Context) (Block, error) {
	content := strings.Join(lines, "")
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	return &Paragraph{Children: ctx.Inline(content)}, nil
}
