package stats

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourHistogram(t *testing.T) {
	var counts [24]int
	counts[8] = 40
	counts[17] = 20
	counts[23] = 1

	lines := HourHistogram(counts, 40)
	require.Len(t, lines, 24)
	for _, line := range lines {
		assert.Equal(t, 40, utf8.RuneCountInString(line))
	}
	barWidth := BarWidthFor(40, 2)
	assert.Equal(t, barWidth, strings.Count(lines[8], barRune))
	assert.Equal(t, barWidth/2, strings.Count(lines[17], barRune))
	assert.Equal(t, 1, strings.Count(lines[23], barRune))
	assert.Equal(t, 0, strings.Count(lines[0], barRune))
	assert.True(t, strings.HasPrefix(lines[8], "08 │ "))
	assert.True(t, strings.HasSuffix(lines[8], " 40"))
}

func TestHourHistogramEmpty(t *testing.T) {
	assert.Nil(t, HourHistogram([24]int{}, 80))
}

func TestBarWidthFor(t *testing.T) {
	assert.Equal(t, 80-2-3-1-3, BarWidthFor(80, 3))
	assert.Equal(t, minBarWidth, BarWidthFor(5, 3))
}
