// Package progression tracks which levels a player has finished, what that
// unlocks, and how close the running level is to being won.
package progression

import "github.com/plus3/match3/match3"

// Level is one entry of the level catalogue.
type Level struct {
	Name          string
	BoardSize     int
	NeededMatches int
	// Unlocks are granted when the level is finished.
	Unlocks match3.UnlockFlags
}

// Config returns the settings the game needs to start this level.
func (l Level) Config() match3.LevelConfig {
	return match3.LevelConfig{BoardSize: l.BoardSize, NeededMatches: l.NeededMatches}
}

// DefaultLevels is the stock three-level catalogue. Finishing a level unlocks
// the next special; the last level unlocks the Eliminator.
func DefaultLevels() []Level {
	return []Level{
		{Name: "level1", BoardSize: 10, NeededMatches: 10, Unlocks: match3.UnlockFlags{Liner: true}},
		{Name: "level2", BoardSize: 10, NeededMatches: 20, Unlocks: match3.UnlockFlags{Bomb: true}},
		{Name: "level3", BoardSize: 10, NeededMatches: 30, Unlocks: match3.UnlockFlags{Eliminator: true}},
	}
}
