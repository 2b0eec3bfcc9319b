// Package reference implements the engine contracts with naive integer arithmetic over Z_q,
// q = 2^32 or 2^64.
//
// The reference backend favors simplicity over performance: polynomial products are computed
// in quadratic time and the tensor product is computed exactly on 128-bit integers. Its engines
// keep track of the entities they own, so that tests can detect leaked entities and reject
// the use of destroyed ones.
package reference

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tuneinsight/fhecore/core/engine"
	"github.com/tuneinsight/fhecore/core/entity"
	"github.com/tuneinsight/fhecore/core/torus"
	"github.com/tuneinsight/fhecore/utils/sampling"
)

// Name is the name of the backend.
const Name = "reference"

var (
	// ErrDestroyedEntity is returned when an operation is given an entity that was destroyed,
	// or that is not owned by the engine.
	ErrDestroyedEntity = errors.New("entity was destroyed or is not owned by this engine")
	// ErrUnsupportedScale is returned by the tensor product for scales that are not powers of two.
	ErrUnsupportedScale = errors.New("scale must be a power of two")
)

// registry tracks the live entities of a set of engines.
type registry struct {
	mutex sync.Mutex
	next  uint64
	live  map[uint64]entity.Kind
}

func newRegistry() *registry {
	return &registry{live: map[uint64]entity.Kind{}}
}

func (r *registry) register(kind entity.Kind) handle {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.next++
	r.live[r.next] = kind
	return handle{uid: r.next}
}

func (r *registry) alive(entities ...Entity) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, e := range entities {
		if _, ok := r.live[e.id()]; !ok {
			return fmt.Errorf("%w: %s", ErrDestroyedEntity, e.Kind())
		}
	}
	return nil
}

func (r *registry) release(e Entity) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.live[e.id()]; !ok {
		return fmt.Errorf("%w: %s", ErrDestroyedEntity, e.Kind())
	}
	delete(r.live, e.id())
	return nil
}

func (r *registry) count() (n int, byKind map[entity.Kind]int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	byKind = map[entity.Kind]int{}
	for _, kind := range r.live {
		byKind[kind]++
	}
	return len(r.live), byKind
}

// Engine is the engine of the reference backend for the raw type T.
//
// Engine is not safe for concurrent use.
type Engine[T torus.Unsigned] struct {
	*registry
	sampler *sampling.TorusSampler[T]
}

// NewEngine returns a new Engine whose randomness is derived from seed.
// The seed must be at most 64 bytes long.
func NewEngine[T torus.Unsigned](seed []byte) (*Engine[T], error) {
	prng, err := sampling.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("cannot NewEngine: %w", err)
	}
	return &Engine[T]{registry: newRegistry(), sampler: sampling.NewTorusSampler[T](prng)}, nil
}

// Backend returns the name of the backend.
func (eng *Engine[T]) Backend() string {
	return Name
}

// LiveEntities returns the number of entities owned by the engine that were not destroyed yet,
// in total and by kind.
func (eng *Engine[T]) LiveEntities() (int, map[entity.Kind]int) {
	return eng.count()
}

// Destroy releases the entity.
func (eng *Engine[T]) Destroy(e Entity) error {
	return engine.DestructionErrors.Engine(eng.release(e))
}

// DestroyUnchecked releases the entity.
func (eng *Engine[T]) DestroyUnchecked(e Entity) {
	_ = eng.release(e)
}

// CleartextEngine is the engine of the reference backend creating cleartexts of raw type V.
// It shares the entity registry of the Engine it was created from.
type CleartextEngine[V entity.Raw] struct {
	*registry
}

// NewCleartextEngine returns a new CleartextEngine sharing the entities of eng.
func NewCleartextEngine[V entity.Raw, T torus.Unsigned](eng *Engine[T]) *CleartextEngine[V] {
	return &CleartextEngine[V]{registry: eng.registry}
}

// Backend returns the name of the backend.
func (eng *CleartextEngine[V]) Backend() string {
	return Name
}

// Destroy releases the entity.
func (eng *CleartextEngine[V]) Destroy(e Entity) error {
	return engine.DestructionErrors.Engine(eng.release(e))
}

// DestroyUnchecked releases the entity.
func (eng *CleartextEngine[V]) DestroyUnchecked(e Entity) {
	_ = eng.release(e)
}
