package ecs

import (
	"github.com/milk9111/platformer/ecs/component"
)

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, their components and the per-tick event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false when e
// was already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.entity(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) Events() *EventQueue {
	return &w.events
}

// Query returns the live entities that have every kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	stores := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate the smallest set
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.len() < smallest.len() {
			smallest = s
		}
	}

	var out []Entity
	for _, id := range smallest.ids() {
		if !hasAll(stores, id) {
			continue
		}
		if e, ok := w.entities.entity(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first entity matching kinds.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func hasAll(stores []store, id entityID) bool {
	for _, s := range stores {
		if !s.has(id) {
			return false
		}
	}
	return true
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		set := &sparseSet[T]{}
		w.stores[kind.ID()] = set
		return set
	}
	set, ok := s.(*sparseSet[T])
	if !ok {
		return nil
	}
	return set
}
