package canvas

import "github.com/google/uuid"

// Clipboard holds copied primitives for one editing session. It is a plain
// value owned by its editor, so two editors never share clipboard contents.
type Clipboard struct {
	items []Primitive
}

// Copy replaces the clipboard contents with copies of the persistent
// primitives named by ids. Unknown and transient IDs are skipped. It returns
// the number of primitives copied.
func (c *Clipboard) Copy(h Host, ids ...ObjectID) int {
	items := make([]Primitive, 0, len(ids))
	for _, id := range ids {
		p, ok := h.Get(id)
		if !ok || p.Transient {
			continue
		}
		items = append(items, p)
	}
	c.items = items
	return len(items)
}

// Paste adds the clipboard contents to h, each moved by (dx, dy), and returns
// the new IDs. The clipboard keeps its contents so it can be pasted again.
// Pasted selection outlines are new regions and get a fresh RegionID.
func (c *Clipboard) Paste(h Drawer, dx, dy float64) []ObjectID {
	ids := make([]ObjectID, 0, len(c.items))
	for _, p := range c.items {
		q := p.Translate(dx, dy)
		if q.RegionID != "" {
			q.RegionID = uuid.New().String()
		}
		ids = append(ids, h.Add(q))
	}
	return ids
}

// Len returns the number of primitives held.
func (c *Clipboard) Len() int { return len(c.items) }

// Clear empties the clipboard.
func (c *Clipboard) Clear() { c.items = nil }
