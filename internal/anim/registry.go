package anim

import (
	"sync/atomic"

	"github.com/ivlev/sagascape/internal/geom"
)

// Registry creates entities and counts how many it has created. The count is
// telemetry only and plays no part in identity.
type Registry struct {
	clock   Clock
	created atomic.Int64
}

// NewRegistry returns a registry whose entities wait on clock.
func NewRegistry(clock Clock) *Registry {
	if clock == nil {
		clock = VirtualClock{}
	}
	return &Registry{clock: clock}
}

// Clock returns the clock handed to new entities.
func (r *Registry) Clock() Clock {
	return r.clock
}

// Created returns the number of entities built so far.
func (r *Registry) Created() int {
	return int(r.created.Load())
}

// NewEntity builds an entity at position. The position is copied.
func (r *Registry) NewEntity(id string, kind Kind, position geom.Vector2D, opts ...Option) (*Entity, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}
	o := entityOptions{
		color: DefaultColor,
		size:  geom.Vec(defaultSize, defaultSize),
		clock: r.clock,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.size.Validate(); err != nil {
		return nil, err
	}
	e := &Entity{
		id:    id,
		kind:  kind,
		color: o.color,
		size:  o.size,
		count: o.count,
		pos:   NewValue(position, o.clock),
	}
	r.created.Add(1)
	return e, nil
}

// NewDictionaryNode builds a dictionary entity showing entries.
func (r *Registry) NewDictionaryNode(id string, position geom.Vector2D, entries int) (*Entity, error) {
	return r.NewEntity(id, KindDictionary, position,
		WithColor(DictionaryColor),
		WithSize(geom.Vec(dictionaryNodeWidth, dictionaryNodeHeight)),
		WithCount(entries),
	)
}
