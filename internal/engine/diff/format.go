package diff

import "strings"

// Format renders a line diff in a compact textual form: "  " for kept
// lines, "- " for deletions, "+ " for insertions, "< " where a moved line
// left and "> " where it arrived.
func Format(a, b []string, res Result) string {
	var sb strings.Builder
	for _, op := range res.Ops {
		switch op.Kind {
		case Keep:
			sb.WriteString("  ")
			sb.WriteString(a[op.Source])
		case Delete:
			sb.WriteString("- ")
			sb.WriteString(a[op.Source])
		case Insert:
			sb.WriteString("+ ")
			sb.WriteString(b[op.Target])
		case Move:
			if op.IsArrival() {
				sb.WriteString("> ")
				sb.WriteString(b[op.Target])
			} else {
				sb.WriteString("< ")
				sb.WriteString(a[op.Source])
			}
		default:
			continue
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
