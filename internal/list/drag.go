package list

import (
	"context"
	"fmt"
	"math"
)

// Box is the on-screen extent of one rendered item.
type Box struct {
	ID     string
	Top    float64
	Height float64
}

// Layout maps item IDs to their rendered boxes, in visual order.
type Layout interface {
	Boxes() []Box
}

// Boxes is a static Layout.
type Boxes []Box

// Boxes implements Layout.
func (b Boxes) Boxes() []Box { return b }

// DropTarget picks the item the dragged item should be inserted before:
// among the candidates, the one whose vertical midpoint is below pointerY and
// closest to it. It reports false when the pointer is below every midpoint,
// meaning the dragged item goes to the end.
func DropTarget(candidates []Box, pointerY float64) (string, bool) {
	best := math.Inf(-1)
	target := ""
	for _, b := range candidates {
		offset := pointerY - b.Top - b.Height/2
		if offset < 0 && offset > best {
			best = offset
			target = b.ID
		}
	}
	return target, target != ""
}

// Dragging returns the ID of the item being dragged.
func (m *Manager) Dragging() (string, bool) {
	return m.dragging, m.dragging != ""
}

// BeginDrag starts a drag gesture on id.
func (m *Manager) BeginDrag(id string) error {
	if m.Index(id) < 0 {
		return fmt.Errorf("drag %s: %w", id, ErrNotFound)
	}
	m.dragging = id
	return nil
}

// DragOver moves the dragged item to where it would drop for pointerY.
// Nothing is persisted until Drop.
func (m *Manager) DragOver(pointerY float64, layout Layout) error {
	if m.dragging == "" {
		return ErrNoDrag
	}

	var candidates []Box
	for _, b := range layout.Boxes() {
		if b.ID != m.dragging {
			candidates = append(candidates, b)
		}
	}

	target, ok := DropTarget(candidates, pointerY)
	if !ok {
		m.moveTo(m.dragging, len(m.items))
		return nil
	}
	to := m.Index(target)
	if to < 0 {
		return nil
	}
	if from := m.Index(m.dragging); from < to {
		// Removing the dragged item shifts the target up by one.
		to--
	}
	m.moveTo(m.dragging, to)
	return nil
}

// Drop ends the drag gesture and persists the order.
func (m *Manager) Drop(ctx context.Context) error {
	if m.dragging == "" {
		return ErrNoDrag
	}
	id := m.dragging
	m.dragging = ""
	m.logger.Debug("item dropped", "id", id, "position", m.Index(id))
	return m.save(ctx)
}

// CancelDrag ends the drag gesture without persisting. The live order is
// kept in memory, survives Reload of this Manager's own writes, and is written
// by the next mutation.
func (m *Manager) CancelDrag() {
	m.dragging = ""
}
