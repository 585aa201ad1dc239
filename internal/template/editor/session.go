package editor

import (
	"sync"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

// Point is a pointer position in page pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// dragging captures an in-flight drag: the element under the pointer and
// the press offset from its top-left corner. A nil value means Idle, so
// "one drag at a time" holds structurally.
type dragging struct {
	elementID string
	offset    Point
}

// Session owns the exclusive working copy of a template while the designer
// has it open. Every mutation is an in-memory edit; nothing reaches the
// store until Save hands the copy to the template service.
type Session struct {
	mu sync.Mutex

	clock     clock.Clock
	working   domain.Template
	selected  string
	drag      *dragging
	dirty     bool
	issuedIDs map[string]struct{}
}

// Open clones the template into a new session.
func Open(tpl domain.Template, clk clock.Clock) *Session {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Session{
		clock:     clk,
		working:   tpl.Clone(),
		issuedIDs: make(map[string]struct{}),
	}
}

// Template returns a copy of the working template, e.g. for saving or
// previewing. The session keeps ownership of its own copy.
func (s *Session) Template() domain.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working.Clone()
}

// Dirty reports whether the working copy has unsaved edits.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkSaved is called after the store confirmed a save. On save failure it
// is not called, so the session keeps its unsaved edits for a retry.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}

// AdoptID records the store-assigned template id after the first save, so
// later saves replace instead of creating a second template.
func (s *Session) AdoptID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.working.ID == "" {
		s.working.ID = id
	}
}

// AddElement creates an element via the factory, appends it to the working
// copy and selects it.
func (s *Session) AddElement(elementType domain.ElementType, label, content string) (domain.Element, error) {
	if !elementType.Valid() {
		return domain.Element{}, domain.ErrInvalidElementType
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	element := s.newElement(elementType, label, content)
	s.working.Elements = append(s.working.Elements, element)
	s.selected = element.ID
	s.dirty = true
	return element, nil
}

// Select marks an element as the property panel's target. Selecting an
// unknown id is a no-op.
func (s *Session) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.working.Element(id); ok {
		s.selected = id
	}
}

// ClearSelection is the empty-canvas click.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
}

// Selected returns the currently selected element, if any.
func (s *Session) Selected() (domain.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return domain.Element{}, false
	}
	return s.working.Element(s.selected)
}

// UpdateElement patches only the fields set on the patch, leaving the rest
// untouched. Updates against an id no longer present are no-ops.
func (s *Session) UpdateElement(id string, patch ElementPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyPatch(id, patch)
}

// UpdateSelected patches the selected element. Without a selection this is
// a no-op, matching the property panel's behavior after a delete.
func (s *Session) UpdateSelected(patch ElementPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return
	}
	s.applyPatch(s.selected, patch)
}

func (s *Session) applyPatch(id string, patch ElementPatch) {
	for i := range s.working.Elements {
		if s.working.Elements[i].ID != id {
			continue
		}
		patch.apply(&s.working.Elements[i])
		s.dirty = true
		return
	}
}

// RemoveElement deletes an element; if it was selected the selection is
// cleared. If it was mid-drag the drag ends.
func (s *Session) RemoveElement(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elements := s.working.Elements[:0]
	removed := false
	for _, element := range s.working.Elements {
		if element.ID == id {
			removed = true
			continue
		}
		elements = append(elements, element)
	}
	if !removed {
		return
	}
	s.working.Elements = elements
	s.dirty = true
	if s.selected == id {
		s.selected = ""
	}
	if s.drag != nil && s.drag.elementID == id {
		s.drag = nil
	}
}

// BeginDrag starts dragging the pressed element, which also selects it.
// The offset between the pointer and the element's corner is kept so the
// element doesn't jump under the cursor.
func (s *Session) BeginDrag(id string, pointer Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	element, ok := s.working.Element(id)
	if !ok {
		return
	}
	s.selected = id
	s.drag = &dragging{
		elementID: id,
		offset:    Point{X: pointer.X - element.X, Y: pointer.Y - element.Y},
	}
}

// DragTo repositions the dragged element to pointer − offset, snapped to
// the nearest even pixel pair. Outside a drag it is a no-op.
func (s *Session) DragTo(pointer Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return
	}

	x := snapEven(pointer.X - s.drag.offset.X)
	y := snapEven(pointer.Y - s.drag.offset.Y)
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for i := range s.working.Elements {
		if s.working.Elements[i].ID != s.drag.elementID {
			continue
		}
		s.working.Elements[i].X = x
		s.working.Elements[i].Y = y
		s.dirty = true
		return
	}
}

// EndDrag is the pointer release.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag = nil
}

// Dragging reports the element id currently being dragged.
func (s *Session) Dragging() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return "", false
	}
	return s.drag.elementID, true
}

// snapEven rounds to the nearest multiple of 2.
func snapEven(v int) int {
	if v >= 0 {
		return ((v + 1) / 2) * 2
	}
	return -(((-v + 1) / 2) * 2)
}
