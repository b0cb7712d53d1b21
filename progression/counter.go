package progression

import (
	"github.com/plus3/match3/match3"
	"go.uber.org/zap"
)

// Counter totals the matches made on the running level. Record is meant to be
// handed to Game.OnMatch.
type Counter struct {
	needed  int
	total   int
	byShape map[match3.Shape]int
	won     bool
	onWin   func()
	log     *zap.Logger
}

// NewCounter creates a counter for a level needing needed matches. onWin, if
// set, is called once when the target is reached.
func NewCounter(needed int, onWin func(), log *zap.Logger) *Counter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Counter{
		needed:  needed,
		byShape: make(map[match3.Shape]int),
		onWin:   onWin,
		log:     log.Named("progression"),
	}
}

// Record counts one match.
func (c *Counter) Record(made match3.MatchMade) {
	c.total++
	c.byShape[made.Shape]++
	if c.won || c.total < c.needed {
		return
	}
	c.won = true
	c.log.Info("level won", zap.Int("matches", c.total), zap.Int("needed", c.needed))
	if c.onWin != nil {
		c.onWin()
	}
}

// Total is the number of matches recorded.
func (c *Counter) Total() int {
	return c.total
}

// Needed is the level's target.
func (c *Counter) Needed() int {
	return c.needed
}

// ByShape returns how many matches of shape were recorded.
func (c *Counter) ByShape(shape match3.Shape) int {
	return c.byShape[shape]
}

// Progress returns total/needed, capped at 1.
func (c *Counter) Progress() float64 {
	if c.needed <= 0 {
		return 1
	}
	return min(1, float64(c.total)/float64(c.needed))
}

// Won reports whether the target has been reached.
func (c *Counter) Won() bool {
	return c.won || c.total >= c.needed
}

// Reset zeroes the counter for a new level.
func (c *Counter) Reset(needed int) {
	c.needed = needed
	c.total = 0
	c.won = false
	clear(c.byShape)
}
