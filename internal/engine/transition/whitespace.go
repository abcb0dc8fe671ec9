package transition

import "strings"

// CorrectWhitespace removes a blank first and last line and strips the
// indentation shared by every non-blank line. It is meant for sources
// embedded with surrounding indentation, such as raw string literals.
func CorrectWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	if isBlank(lines[0]) {
		lines = lines[1:]
	}
	if n := len(lines); n > 0 && isBlank(lines[n-1]) {
		lines = lines[:n-1]
	}

	indent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	if indent > 0 {
		for i, line := range lines {
			if len(line) >= indent {
				lines[i] = line[indent:]
			} else {
				lines[i] = strings.TrimLeft(line, " \t")
			}
		}
	}
	return strings.Join(lines, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
