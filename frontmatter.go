package mdtree

import "strings"

// StripFrontMatter removes a leading YAML front matter block from lines.
// The block opens with `---` on the very first line, its first body line
// must look like metadata, and it closes with `---` or `...`. Anything
// else, including an unterminated block, is returned unchanged so a
// document starting with a separator keeps parsing as markup.
func StripFrontMatter(lines []string) []string {
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "---" {
		return lines
	}
	if !metadataLikely(lines[1]) {
		return lines
	}
	for i := 1; i < len(lines); i++ {
		switch strings.TrimSpace(lines[i]) {
		case "---", "...":
			return lines[i+1:]
		}
	}
	return lines
}

func metadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	return strings.Contains(trimmed, ":")
}
