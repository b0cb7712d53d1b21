package progression

import (
	"fmt"

	"github.com/plus3/match3/match3"
	"go.uber.org/zap"
)

// Tracker records finished levels and the unlocks they granted. It satisfies
// match3.UnlockProvider.
type Tracker struct {
	levels   []Level
	finished []bool
	unlocks  match3.UnlockFlags
	log      *zap.Logger
}

// NewTracker creates a tracker over a level catalogue. A nil logger discards output.
func NewTracker(levels []Level, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		levels:   levels,
		finished: make([]bool, len(levels)),
		log:      log.Named("progression"),
	}
}

// Levels returns the catalogue.
func (t *Tracker) Levels() []Level {
	return t.levels
}

// Level returns level i.
func (t *Tracker) Level(i int) (Level, error) {
	if i < 0 || i >= len(t.levels) {
		return Level{}, fmt.Errorf("level %d: out of range [0,%d)", i, len(t.levels))
	}
	return t.levels[i], nil
}

// Available reports whether level i can be played: every earlier level is
// finished and level i itself is not.
func (t *Tracker) Available(i int) bool {
	if i < 0 || i >= len(t.levels) || t.finished[i] {
		return false
	}
	for _, done := range t.finished[:i] {
		if !done {
			return false
		}
	}
	return true
}

// Next returns the index of the level that is available, or -1 once every level is finished.
func (t *Tracker) Next() int {
	for i := range t.levels {
		if t.Available(i) {
			return i
		}
	}
	return -1
}

// Finished reports whether level i has been won.
func (t *Tracker) Finished(i int) bool {
	return i >= 0 && i < len(t.finished) && t.finished[i]
}

// Finish marks level i won and grants its unlocks. Unlocks are never taken
// back; finishing a level twice is harmless.
func (t *Tracker) Finish(i int) error {
	lvl, err := t.Level(i)
	if err != nil {
		return fmt.Errorf("finish: %w", err)
	}
	t.finished[i] = true
	t.unlocks = merge(t.unlocks, lvl.Unlocks)
	t.log.Info("level finished",
		zap.String("level", lvl.Name),
		zap.Bool("eliminator", t.unlocks.Eliminator),
		zap.Bool("bomb", t.unlocks.Bomb),
		zap.Bool("liner", t.unlocks.Liner),
	)
	return nil
}

// Unlocks returns every flag granted so far.
func (t *Tracker) Unlocks() match3.UnlockFlags {
	return t.unlocks
}

// Reset forgets all progress.
func (t *Tracker) Reset() {
	clear(t.finished)
	t.unlocks = match3.UnlockFlags{}
}

func merge(a, b match3.UnlockFlags) match3.UnlockFlags {
	return match3.UnlockFlags{
		Eliminator: a.Eliminator || b.Eliminator,
		Bomb:       a.Bomb || b.Bomb,
		Liner:      a.Liner || b.Liner,
	}
}
