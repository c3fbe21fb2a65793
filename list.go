package mdtree

import (
	"strconv"
	"strings"
)

type listType struct{}

func (listType) Match(lines []string) bool {
	return hasValidLeader(strings.TrimSpace(lines[0]))
}

func (listType) Build(lines []string, ctx Context) (Block, error) {
	children, err := buildListChildren(lines, ctx)
	if err != nil {
		return nil, err
	}
	list := &List{Children: children}
	leader, _, _ := strings.Cut(lines[0], " ")
	if start, ok := leaderNumber(leader); ok {
		list.Start = start
		list.Ordered = true
	}
	return list, nil
}

// buildListChildren groups flat lines into ListItem and nested List
// siblings. A line with a valid leader starts a new item; a 4-space
// indented line is destemmed and, if it then carries a leader, opens a
// nested list; anything else is a lazy continuation of the current
// buffer.
func buildListChildren(lines []string, ctx Context) ([]Block, error) {
	var children []Block
	var buf []string
	nested := false
	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		var child Block
		var err error
		if nested {
			child, err = listType{}.Build(buf, ctx)
		} else {
			child, err = buildListItem(buf, ctx)
		}
		if err != nil {
			return err
		}
		children = append(children, child)
		nested = false
		buf = nil
		return nil
	}
	for _, line := range lines {
		if hasValidLeader(line) {
			if err := flush(); err != nil {
				return nil, err
			}
		} else if strings.HasPrefix(line, "    ") {
			line = line[4:]
			if hasValidLeader(line) {
				if !nested {
					if err := flush(); err != nil {
						return nil, err
					}
				}
				nested = true
			}
		}
		buf = append(buf, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return children, nil
}

func buildListItem(lines []string, ctx Context) (Block, error) {
	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed = append(trimmed, strings.TrimSpace(line))
	}
	joined := strings.Join(trimmed, " ")
	_, content, found := strings.Cut(joined, " ")
	if !found {
		// leader with no content
		content = ""
	}
	return &ListItem{Children: ctx.Inline(strings.TrimSpace(content))}, nil
}

// hasValidLeader reports whether line begins a list item: an unordered
// marker followed by a space, or an ordered marker whose characters
// before the terminator are all digits. Lines starting with spaces never
// have a leader.
func hasValidLeader(line string) bool {
	if strings.HasPrefix(line, "+ ") ||
		strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") {
		return true
	}
	leader, _, _ := strings.Cut(line, " ")
	if len(leader) < 2 {
		return false
	}
	return isDigits(leader[:len(leader)-1])
}

func leaderNumber(leader string) (int, bool) {
	if len(leader) < 2 {
		return 0, false
	}
	digits := leader[:len(leader)-1]
	if !isDigits(digits) {
		return 0, false
	}
	start, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return start, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
