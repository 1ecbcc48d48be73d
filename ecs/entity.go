package ecs

import (
	"math"
	"strconv"
)

// EntityId is an opaque handle for a live entity within a single Scene.
// Ids are unique among live entities and are recycled after Destroy.
type EntityId uint32

// NullEntity denotes "no entity". Create never returns it.
const NullEntity EntityId = math.MaxUint32

// IsNull reports whether the id is the NullEntity sentinel.
func (e EntityId) IsNull() bool {
	return e == NullEntity
}

func (e EntityId) String() string {
	if e == NullEntity {
		return "null"
	}
	return strconv.FormatUint(uint64(e), 10)
}

// entityRecord is the per-slot bookkeeping kept by the Scene.
type entityRecord struct {
	id    EntityId
	mask  ComponentMask
	valid bool
}
