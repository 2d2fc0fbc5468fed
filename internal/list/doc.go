// Package list implements the list manager: an ordered collection of items
// that is written to a snapshot store after every mutation.
//
// All operations address items by ID. Reordering by pointer drag is split
// into BeginDrag, DragOver and Drop: DragOver moves the dragged item live as
// the pointer moves, and only Drop persists the new order.
package list
