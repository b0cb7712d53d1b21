package match3

import "github.com/plus3/match3/ecs"

// resolveStep is one priority level of the resolver.
type resolveStep struct {
	templates []Template
	unlocked  func(UnlockFlags) bool
	apply     func(r *resolution, m Match) MatchMade
}

var resolveSteps = []resolveStep{
	{
		templates: FiveLineTemplates,
		unlocked:  func(u UnlockFlags) bool { return u.Eliminator },
		apply:     (*resolution).promoteCenter,
	},
	{
		templates: LBendTemplates,
		unlocked:  func(u UnlockFlags) bool { return u.Bomb },
		apply:     (*resolution).promoteCenter,
	},
	{
		templates: QuadLineTemplates,
		unlocked:  func(u UnlockFlags) bool { return u.Liner },
		apply:     (*resolution).promoteLiner,
	},
	{
		templates: TripleTemplates,
		unlocked:  func(UnlockFlags) bool { return true },
		apply:     (*resolution).clearAll,
	},
}

type resolution struct {
	pieces  Lookup[Piece]
	claimed *Claimed
	swapped JustSwapped
}

// Resolve runs every unlocked template family in priority order: five-line,
// L-bend, quad-line, then triple. Marks and promotions made by one match are
// visible to every later match, so a cell is consumed by at most one match per
// step and the stronger pattern wins overlapping runs. Within a family, the
// first placement in scan order wins.
//
// Claimed cells are added to claimed; the returned events are in resolution order.
func Resolve(board *Board, pieces Lookup[Piece], claimed *Claimed, unlocks UnlockFlags, swapped JustSwapped) []MatchMade {
	r := &resolution{pieces: pieces, claimed: claimed, swapped: swapped}

	var made []MatchMade
	for _, step := range resolveSteps {
		if !step.unlocked(unlocks) {
			continue
		}
		for _, m := range Detect(board, pieces, claimed, step.templates...) {
			if !eligible(pieces, claimed, m) {
				continue
			}
			made = append(made, step.apply(r, m))
		}
	}
	return made
}

// promoteCenter claims the offset cells and turns the center into the
// template's special.
func (r *resolution) promoteCenter(m Match) MatchMade {
	for _, cell := range m.Offsets {
		r.claimed.Mark(cell)
	}
	*r.pieces.Get(m.Center) = m.Template.Promote
	return r.event(m, m.Center)
}

// promoteLiner claims the whole run and then spares one cell as the Liner: the
// swapped cell when the swap formed this run, otherwise the center.
func (r *resolution) promoteLiner(m Match) MatchMade {
	cells := m.Cells()
	for _, cell := range cells {
		r.claimed.Mark(cell)
	}

	promoted := m.Center
	switch {
	case r.swapped.A != 0 && m.Contains(r.swapped.A):
		promoted = r.swapped.A
	case r.swapped.B != 0 && m.Contains(r.swapped.B):
		promoted = r.swapped.B
	}

	r.claimed.Unmark(promoted)
	*r.pieces.Get(promoted) = m.Template.Promote
	return r.event(m, promoted)
}

func (r *resolution) clearAll(m Match) MatchMade {
	for _, cell := range m.Offsets {
		r.claimed.Mark(cell)
	}
	r.claimed.Mark(m.Center)
	return r.event(m, 0)
}

func (r *resolution) event(m Match, promoted ecs.EntityId) MatchMade {
	made := MatchMade{
		Shape:    m.Template.Shape,
		Center:   m.Center,
		Cells:    m.Cells(),
		Promoted: promoted,
	}
	if promoted != 0 {
		made.Special = m.Template.Promote
	}
	return made
}
