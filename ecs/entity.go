package ecs

// EntityId encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits).
// Generations start at 1, so the zero EntityId never names a live entity.
type EntityId uint64

// NewEntityId creates an EntityId from a generation and slot index
func NewEntityId(generation uint32, index uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// entityAllocator hands out entity ids, recycling freed slots with a bumped generation
// so stale ids held by callers never alias a newer entity.
type entityAllocator struct {
	generations []uint32
	alive       []bool
	free        []uint32
	count       int
}

func (a *entityAllocator) allocate() EntityId {
	a.count++

	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]
		a.generations[index]++
		a.alive[index] = true
		return NewEntityId(a.generations[index], index)
	}

	index := uint32(len(a.generations))
	a.generations = append(a.generations, 1)
	a.alive = append(a.alive, true)
	return NewEntityId(1, index)
}

func (a *entityAllocator) isAlive(id EntityId) bool {
	index := id.Index()
	if int(index) >= len(a.generations) {
		return false
	}
	return a.alive[index] && a.generations[index] == id.Generation()
}

func (a *entityAllocator) release(id EntityId) bool {
	if !a.isAlive(id) {
		return false
	}
	index := id.Index()
	a.alive[index] = false
	a.free = append(a.free, index)
	a.count--
	return true
}
