package canvas

// Drawer is the part of a Host that lasso sessions use to show their
// transient visual aids.
type Drawer interface {
	// Add inserts p and returns its ID.
	Add(p Primitive) ObjectID
	// Remove deletes the primitive with the given ID, reporting whether it
	// existed.
	Remove(id ObjectID) bool
}

// Host is the full capability surface the editor consumes.
type Host interface {
	Drawer

	// Get returns a copy of the primitive with the given ID.
	Get(id ObjectID) (Primitive, bool)
	// Objects lists the IDs of all primitives in insertion order.
	Objects() []ObjectID

	// Serialize captures every persistent primitive.
	Serialize() ([]byte, error)
	// Deserialize replaces every persistent primitive with the state in
	// data. Transient primitives are discarded.
	Deserialize(data []byte) error

	// ActiveObject returns the currently active object, if any.
	ActiveObject() (ObjectID, bool)
	// SetActiveObject marks id active. Zero clears the active object.
	SetActiveObject(id ObjectID)
}
