package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"User type", "Trips"}
	rows := [][]string{
		{"Subscriber", "12"},
		{"Customer", "3"},
	}

	lines := formatTable(headers, rows, map[int]bool{1: true})
	require.Len(t, lines, 3)
	assert.Equal(t, "User type   Trips", lines[0])
	assert.Equal(t, "Subscriber     12", lines[1])
	assert.Equal(t, "Customer        3", lines[2])
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Station", "N"}, [][]string{
		{"東京駅", "1"},
		{"Oslo", "2"},
	}, map[int]bool{1: true})
	require.Len(t, lines, 3)
	assert.Equal(t, "東京駅   1", lines[1])
	assert.Equal(t, "Oslo     2", lines[2])
}

func TestClip(t *testing.T) {
	assert.Equal(t, "Canal St", clip("Canal St", 20))
	assert.Equal(t, "Canal S...", clip("Canal St & Adams St", 10))
	assert.Equal(t, "Canal St & Adams St", clip("Canal St & Adams St", 0))
}
