// Package history implements linear undo/redo over opaque canvas snapshots.
//
// A Manager holds the current snapshot plus two stacks: past states that
// Undo returns to and future states that Redo returns to. Recording a new
// state clears the future; there is no redo tree. The past stack is capped
// at a maximum depth and silently drops its oldest entry when full.
//
// # Applying Snapshots
//
// Restoring a snapshot usually mutates the canvas, and a canvas that records
// on every mutation would then record the restore itself. Apply runs the
// restore with an "applying" flag set; Record, Undo and Redo are ignored
// while it is set.
//
//	s, ok := m.Undo()
//	if ok {
//	    err := m.Apply(s, func(s history.Snapshot) error {
//	        return host.Deserialize(s)
//	    })
//	}
//
// A Manager belongs to one editing surface and must not be shared between
// surfaces.
package history
