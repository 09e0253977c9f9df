package stats

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	axisSeparator       = " │ "
	barRune             = "█"
	minBarWidth         = 10
	terminalWidthBackup = 80
)

// HourHistogram renders trips per start hour, one line per hour, with bars
// scaled to the busiest hour. A totalWidth of zero uses the terminal width.
func HourHistogram(counts [24]int, totalWidth int) []string {
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	countWidth := len(strconv.Itoa(maxCount))
	barWidth := BarWidthFor(totalWidth, countWidth)

	lines := make([]string, 0, len(counts))
	for hour, c := range counts {
		n := c * barWidth / maxCount
		if c > 0 && n == 0 {
			n = 1
		}
		bar := strings.Repeat(barRune, n) + strings.Repeat(" ", barWidth-n)
		lines = append(lines, fmt.Sprintf("%02d%s%s %*d", hour, axisSeparator, bar, countWidth, c))
	}
	return lines
}

// BarWidthFor computes the bar width that fits within the total width.
func BarWidthFor(totalWidth, countWidth int) int {
	// hour label, separator, space before the count
	fixed := 2 + len([]rune(axisSeparator)) + 1 + countWidth
	w := totalWidth - fixed
	if w < minBarWidth {
		w = minBarWidth
	}
	return w
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
