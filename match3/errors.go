package match3

import (
	"errors"
	"fmt"

	"github.com/plus3/match3/ecs"
)

// ErrLookupInconsistency is wrapped by the value a tick panics with when a cell
// expected on the board (or its piece) is missing. The board cannot be repaired
// locally, so the tick fails instead of continuing on a corrupt layout.
var ErrLookupInconsistency = errors.New("match3: board lookup inconsistency")

func lookupPanic(id ecs.EntityId, what string) {
	panic(fmt.Errorf("%w: cell %d %s", ErrLookupInconsistency, id, what))
}
