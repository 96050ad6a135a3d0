package emojirank

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const chartHeight = 10

// verticalChart draws one column per entry, scaled so the largest count
// fills the full height and every entry shows at least one cell. Labels
// and counts go on two footer rows under the bars.
func verticalChart(labels []string, counts []int) string {
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return ""
	}

	bars := make([]int, len(counts))
	for i, c := range counts {
		// round up so tiny counts still produce a visible bar
		bar := (c*chartHeight + maxCount - 1) / maxCount
		if bar < 1 {
			bar = 1
		}
		bars[i] = bar
	}

	var b strings.Builder
	for level := chartHeight; level > 0; level-- {
		for _, bar := range bars {
			if bar >= level {
				b.WriteString("  █  ")
			} else {
				b.WriteString("     ")
			}
		}
		b.WriteByte('\n')
	}
	for _, l := range labels {
		b.WriteString(" " + l + "  ")
	}
	b.WriteByte('\n')
	for _, c := range counts {
		b.WriteString(" " + center(strconv.Itoa(c), 3) + " ")
	}
	return b.String()
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// rankedList renders one line per entry, counts grouped by thousands. The
// dot is escaped so Discord does not restyle the lines as a markdown list.
func rankedList(labels []string, counts []int) string {
	p := message.NewPrinter(language.English)

	lines := make([]string, len(labels))
	for i, l := range labels {
		lines[i] = p.Sprintf("%d\\. %s (%d)", i+1, l, number.Decimal(counts[i]))
	}
	return strings.Join(lines, "\n")
}
