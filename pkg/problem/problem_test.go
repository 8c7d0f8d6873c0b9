package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lintang-bs/pathcore/pkg/core"
)

func TestSolutionFound(t *testing.T) {
	empty := Solution{}
	assert.False(t, empty.Found())

	withPath := Solution{Path: []core.NodeID{1, 2, 3}}
	assert.True(t, withPath.Found())
}
