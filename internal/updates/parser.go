package updates

import "strings"

// pointPrefix marks a bullet line inside a date block.
const pointPrefix = "- "

// Parse splits canonical text into blocks on blank-line boundaries. The
// first line of each block is the date header; subsequent lines carrying
// the "- " marker (stripped) are points. Parse never fails: malformed
// chunks simply yield blocks with fewer points, and renderers decide what
// to do with dates that don't parse.
func Parse(text string) []Block {
	trimmed := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if trimmed == "" {
		return nil
	}

	var blocks []Block
	for _, chunk := range strings.Split(trimmed, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")
		block := Block{Date: strings.TrimSpace(lines[0])}
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, pointPrefix) {
				block.Points = append(block.Points, strings.TrimPrefix(line, pointPrefix))
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Serialize renders blocks back into canonical text: date header, one "- "
// line per point, blocks separated by a blank line, trailing newline added.
// Serialize(Parse(text)) reproduces text modulo trailing-newline
// normalization, which keeps the canonical store round-trip safe.
func Serialize(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.Date)
		for _, point := range block.Points {
			b.WriteString("\n" + pointPrefix + point)
		}
	}
	b.WriteString("\n")
	return b.String()
}
