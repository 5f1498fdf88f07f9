package firpdf

import "strings"

// wrapText breaks text into lines no wider than width as reported by measure.
// Explicit newlines are kept, so blank lines between paragraphs survive.
// Words wider than a full line are split by character.
func wrapText(text string, width float64, measure func(string) float64) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			if line != "" {
				lines = append(lines, line)
			}
			line = word
			for measure(line) > width {
				head, tail := splitToWidth(line, width, measure)
				lines = append(lines, head)
				line = tail
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// splitToWidth cuts the longest prefix of s that fits width, always taking at
// least one character.
func splitToWidth(s string, width float64, measure func(string) float64) (string, string) {
	r := []rune(s)
	n := 1
	for n < len(r) && measure(string(r[:n+1])) <= width {
		n++
	}
	return string(r[:n]), string(r[n:])
}
