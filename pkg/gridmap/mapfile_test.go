package gridmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleMap = "type octile\nheight 3\nwidth 3\nmap\n...\n.#.\n...\n"

func TestLoadMovingAI(t *testing.T) {
	g, err := LoadMovingAI(strings.NewReader(sampleMap))
	assert.NoError(t, err)
	assert.Equal(t, int32(3), g.Width())
	assert.Equal(t, int32(3), g.Height())
	assert.True(t, g.GetLabel(0, 0))
	assert.False(t, g.GetLabel(1, 1))
	assert.True(t, g.GetLabel(2, 2))
}

func TestLoadMovingAITruncated(t *testing.T) {
	_, err := LoadMovingAI(strings.NewReader("type octile\nheight 3\nwidth 3\nmap\n...\n"))
	assert.Error(t, err)
}

func TestLoadMovingAIWeighted(t *testing.T) {
	g, err := LoadMovingAIWeighted(strings.NewReader(sampleMap))
	assert.NoError(t, err)
	assert.Equal(t, byte('.'), g.Terrain(0, 0))
	assert.Equal(t, BlockedTerrain, g.Terrain(1, 1))
}
