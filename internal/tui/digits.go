package tui

import (
	"strings"
)

// bigDigits maps clock characters to 5-row block art, 5 columns each
var bigDigits = map[rune][5]string{
	'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
	'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "████ ", "    █", "████ "},
	'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
	'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
	'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
	'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
	':': {"     ", "  █  ", "     ", "  █  ", "     "},
}

// BigDigits renders a time string like "25:00" as 5-row block art.
// Characters without art are skipped.
func BigDigits(s string) string {
	var lines [5]strings.Builder
	for _, ch := range s {
		art, ok := bigDigits[ch]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	rows := make([]string, 5)
	for i := range lines {
		rows[i] = strings.TrimRight(lines[i].String(), " ")
	}
	return strings.Join(rows, "\n")
}
