package progression_test

import (
	"testing"

	"github.com/plus3/match3/match3"
	"github.com/plus3/match3/progression"
	"github.com/stretchr/testify/assert"
)

func TestCounterReachesTarget(t *testing.T) {
	wins := 0
	c := progression.NewCounter(3, func() { wins++ }, nil)

	c.Record(match3.MatchMade{Shape: match3.ShapeTriple})
	c.Record(match3.MatchMade{Shape: match3.ShapeQuadLine})
	assert.False(t, c.Won())
	assert.InDelta(t, 2.0/3.0, c.Progress(), 1e-9)

	c.Record(match3.MatchMade{Shape: match3.ShapeTriple})
	assert.True(t, c.Won())
	assert.Equal(t, 1, wins)

	c.Record(match3.MatchMade{Shape: match3.ShapeTriple})
	assert.Equal(t, 1, wins, "the win fires once")
	assert.Equal(t, 4, c.Total())
	assert.Equal(t, 1.0, c.Progress())
	assert.Equal(t, 3, c.ByShape(match3.ShapeTriple))
	assert.Equal(t, 1, c.ByShape(match3.ShapeQuadLine))
}

func TestCounterReset(t *testing.T) {
	c := progression.NewCounter(1, nil, nil)
	c.Record(match3.MatchMade{})
	assert.True(t, c.Won())

	c.Reset(20)
	assert.False(t, c.Won())
	assert.Zero(t, c.Total())
	assert.Equal(t, 20, c.Needed())
	assert.Zero(t, c.ByShape(match3.ShapeTriple))
}
