package canvas

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/ironsheep/image-lasso/internal/monitoring"
)

// DefaultStroke replaces stroke colours that fail to parse.
const DefaultStroke = "#1e90ff"

// Arena is an in-memory Host. Primitives live in a map keyed by ObjectID, and
// a separate slice preserves insertion order for painting and serialisation.
//
// Arena is safe for concurrent use, although an editor drives it from a
// single goroutine.
type Arena struct {
	mu     sync.RWMutex
	nextID ObjectID
	order  []ObjectID
	objs   map[ObjectID]Primitive
	active ObjectID
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{objs: make(map[ObjectID]Primitive)}
}

// Add inserts a copy of p. Invalid colours are replaced by DefaultStroke (for
// strokes) or dropped (for fills) rather than rejected, since drawing must not
// interrupt a trace.
func (a *Arena) Add(p Primitive) ObjectID {
	p = normalizePrimitive(p)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	id := a.nextID
	a.objs[id] = p
	a.order = append(a.order, id)
	return id
}

func normalizePrimitive(p Primitive) Primitive {
	p = p.Clone()
	style, err := p.Style.Normalize()
	if err != nil {
		monitoring.Logf("canvas: %v", err)
		style = p.Style
		if _, serr := (Style{Stroke: style.Stroke}).Normalize(); serr != nil {
			style.Stroke = DefaultStroke
		}
		if _, ferr := (Style{Fill: style.Fill}).Normalize(); ferr != nil {
			style.Fill = ""
		}
		style, _ = style.Normalize()
	}
	p.Style = style
	return p
}

// Remove deletes id. Removing the active object clears the active object.
func (a *Arena) Remove(id ObjectID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.objs[id]; !ok {
		return false
	}
	delete(a.objs, id)
	a.order = slices.DeleteFunc(a.order, func(o ObjectID) bool { return o == id })
	if a.active == id {
		a.active = 0
	}
	return true
}

// Get returns a copy of the primitive stored under id.
func (a *Arena) Get(id ObjectID) (Primitive, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.objs[id]
	if !ok {
		return Primitive{}, false
	}
	return p.Clone(), true
}

// Objects returns all IDs in insertion order.
func (a *Arena) Objects() []ObjectID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.order)
}

// Len returns the number of primitives, transient ones included.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.order)
}

// TransientCount returns the number of transient primitives.
func (a *Arena) TransientCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	n := 0
	for _, p := range a.objs {
		if p.Transient {
			n++
		}
	}
	return n
}

// snapshot is the serialised form of an arena.
type snapshot struct {
	Objects []snapshotObject `json:"objects"`
	Active  ObjectID         `json:"active,omitempty"`
	NextID  ObjectID         `json:"next_id"`
}

type snapshotObject struct {
	ID ObjectID `json:"id"`
	Primitive
}

// Serialize encodes every persistent primitive with its ID, in order.
func (a *Arena) Serialize() ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := snapshot{
		Objects: make([]snapshotObject, 0, len(a.order)),
		NextID:  a.nextID,
	}
	for _, id := range a.order {
		p := a.objs[id]
		if p.Transient {
			continue
		}
		s.Objects = append(s.Objects, snapshotObject{ID: id, Primitive: p})
	}
	if p, ok := a.objs[a.active]; ok && !p.Transient {
		s.Active = a.active
	}

	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize canvas: %w", err)
	}
	return data, nil
}

// Deserialize replaces the arena contents with data. The arena is left
// untouched if data cannot be decoded. IDs are preserved, and the ID counter
// never moves backwards, so IDs handed out after a restore stay unique.
func (a *Arena) Deserialize(data []byte) error {
	var s snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("failed to deserialize canvas: %w", err)
	}

	objs := make(map[ObjectID]Primitive, len(s.Objects))
	order := make([]ObjectID, 0, len(s.Objects))
	for _, o := range s.Objects {
		if _, dup := objs[o.ID]; dup || o.ID == 0 {
			return fmt.Errorf("failed to deserialize canvas: invalid object id %d", o.ID)
		}
		objs[o.ID] = o.Primitive
		order = append(order, o.ID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.objs = objs
	a.order = order
	if s.NextID > a.nextID {
		a.nextID = s.NextID
	}
	a.active = 0
	if _, ok := objs[s.Active]; ok {
		a.active = s.Active
	}
	return nil
}

// ActiveObject returns the active object ID.
func (a *Arena) ActiveObject() (ObjectID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active, a.active != 0
}

// SetActiveObject marks id active. Unknown IDs clear the active object.
func (a *Arena) SetActiveObject(id ObjectID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.objs[id]; !ok {
		id = 0
	}
	a.active = id
}
