package editor

import (
	"testing"
	"time"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

func openTestSession(t *testing.T) *Session {
	t.Helper()
	tpl := domain.Blank("Nouveau Design", domain.CategoryInvoice)
	return Open(tpl, clock.SystemClock{})
}

func TestFactoryAssignsUniqueIDs(t *testing.T) {
	s := openTestSession(t)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		element, err := s.AddElement(domain.ElementStatic, "Texte Statique", "Texte")
		if err != nil {
			t.Fatalf("add element: %v", err)
		}
		if _, dup := seen[element.ID]; dup {
			t.Fatalf("duplicate element id %q", element.ID)
		}
		seen[element.ID] = struct{}{}
	}
}

func TestFactoryDividerDefaults(t *testing.T) {
	s := openTestSession(t)
	element, err := s.AddElement(domain.ElementDivider, "Séparateur", "whatever content")
	if err != nil {
		t.Fatalf("add element: %v", err)
	}
	if element.Height != 2 {
		t.Fatalf("divider height = %d, want 2", element.Height)
	}
	if element.Width != wideWidth {
		t.Fatalf("divider width = %d, want %d", element.Width, wideWidth)
	}
}

func TestFactoryChecklistDefaults(t *testing.T) {
	s := openTestSession(t)
	element, err := s.AddElement(domain.ElementChecklist, "Bloc Sécurité", domain.ChecklistSecurity)
	if err != nil {
		t.Fatalf("add element: %v", err)
	}
	if element.Height != 180 || element.Width != wideWidth {
		t.Fatalf("checklist geometry = %dx%d", element.Width, element.Height)
	}
	items, ok := element.ChecklistItemsPresent()
	if !ok {
		t.Fatalf("checklist payload missing")
	}
	for _, name := range domain.ChecklistItems(domain.ChecklistSecurity) {
		present, found := items[name]
		if !found || !present {
			t.Fatalf("item %q should default to present", name)
		}
	}
}

func TestFactoryTextDefaults(t *testing.T) {
	s := openTestSession(t)
	element, err := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")
	if err != nil {
		t.Fatalf("add element: %v", err)
	}
	if element.Width != 200 || element.Height != 40 {
		t.Fatalf("text geometry = %dx%d, want 200x40", element.Width, element.Height)
	}
	if element.FontSize != 12 || element.Color != "#111827" || element.BackgroundColor != "transparent" {
		t.Fatalf("unexpected style defaults: %+v", element)
	}
	if element.TextAlign != domain.AlignLeft || element.Opacity != 1 || element.ZIndex != 10 {
		t.Fatalf("unexpected style defaults: %+v", element)
	}
	if _, ok := element.ChecklistItemsPresent(); ok {
		t.Fatalf("non-checklist element exposes checklist payload")
	}
}

func TestAddElementSelectsIt(t *testing.T) {
	s := openTestSession(t)
	element, _ := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	selected, ok := s.Selected()
	if !ok || selected.ID != element.ID {
		t.Fatalf("new element should be selected")
	}
}

func TestClearSelectionMakesPanelEditsNoops(t *testing.T) {
	s := openTestSession(t)
	element, _ := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	s.ClearSelection()
	if _, ok := s.Selected(); ok {
		t.Fatalf("selection should be cleared")
	}

	content := "changed"
	s.UpdateSelected(ElementPatch{Content: &content})

	got, _ := s.Template().Element(element.ID)
	if got.Content != "Bonjour" {
		t.Fatalf("edit without selection mutated element: %q", got.Content)
	}
}

func TestUpdateElementMissingIDIsNoop(t *testing.T) {
	s := openTestSession(t)
	s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	content := "changed"
	s.UpdateElement("static-0-000", ElementPatch{Content: &content})

	tpl := s.Template()
	if len(tpl.Elements) != 1 || tpl.Elements[0].Content != "Bonjour" {
		t.Fatalf("missing-id update altered the template")
	}
}

func TestUpdateElementPatchesOnlyTouchedFields(t *testing.T) {
	s := openTestSession(t)
	element, _ := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	size := 18
	s.UpdateElement(element.ID, ElementPatch{FontSize: &size})

	got, _ := s.Template().Element(element.ID)
	if got.FontSize != 18 {
		t.Fatalf("fontSize not applied: %d", got.FontSize)
	}
	if got.Content != "Bonjour" || got.Color != "#111827" || got.Width != 200 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestRemoveSelectedElementClearsSelection(t *testing.T) {
	s := openTestSession(t)
	a, _ := s.AddElement(domain.ElementStatic, "A", "a")
	b, _ := s.AddElement(domain.ElementStatic, "B", "b")

	// b is selected; removing a must not disturb the selection.
	s.RemoveElement(a.ID)
	selected, ok := s.Selected()
	if !ok || selected.ID != b.ID {
		t.Fatalf("removing unselected element changed selection")
	}

	s.RemoveElement(b.ID)
	if _, ok := s.Selected(); ok {
		t.Fatalf("removing selected element should clear selection")
	}
	if len(s.Template().Elements) != 0 {
		t.Fatalf("elements remain after removal")
	}
}

func TestDragSnapsToEvenPixels(t *testing.T) {
	s := openTestSession(t)
	element, _ := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	// Press 10,10 inside the element (element at 50,150).
	s.BeginDrag(element.ID, Point{X: 60, Y: 160})
	s.DragTo(Point{X: 133, Y: 241})
	s.EndDrag()

	got, _ := s.Template().Element(element.ID)
	// pointer − offset = (123, 231), snapped to (124, 232).
	if got.X != 124 || got.Y != 232 {
		t.Fatalf("position = (%d, %d), want (124, 232)", got.X, got.Y)
	}
}

func TestDragClampsAtPageOrigin(t *testing.T) {
	s := openTestSession(t)
	element, _ := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	s.BeginDrag(element.ID, Point{X: 50, Y: 150})
	s.DragTo(Point{X: -30, Y: -10})
	s.EndDrag()

	got, _ := s.Template().Element(element.ID)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("position = (%d, %d), want (0, 0)", got.X, got.Y)
	}
}

func TestDragSelectsElementAndEndsOnRelease(t *testing.T) {
	s := openTestSession(t)
	a, _ := s.AddElement(domain.ElementStatic, "A", "a")
	s.AddElement(domain.ElementStatic, "B", "b")

	s.BeginDrag(a.ID, Point{X: 55, Y: 155})
	if id, ok := s.Dragging(); !ok || id != a.ID {
		t.Fatalf("drag not active for pressed element")
	}
	if selected, ok := s.Selected(); !ok || selected.ID != a.ID {
		t.Fatalf("press should select the element")
	}

	s.EndDrag()
	if _, ok := s.Dragging(); ok {
		t.Fatalf("drag should end on release")
	}

	// Movement after release is a no-op.
	before, _ := s.Template().Element(a.ID)
	s.DragTo(Point{X: 400, Y: 400})
	after, _ := s.Template().Element(a.ID)
	if before.X != after.X || before.Y != after.Y {
		t.Fatalf("element moved outside a drag")
	}
}

func TestRemoveDraggedElementEndsDrag(t *testing.T) {
	s := openTestSession(t)
	element, _ := s.AddElement(domain.ElementStatic, "Texte", "Bonjour")

	s.BeginDrag(element.ID, Point{X: 55, Y: 155})
	s.RemoveElement(element.ID)

	if _, ok := s.Dragging(); ok {
		t.Fatalf("drag should end when the element is removed")
	}
}

func TestSessionOwnsItsWorkingCopy(t *testing.T) {
	tpl := domain.Blank("Facture", domain.CategoryInvoice)
	tpl.ID = "tpl-1"
	tpl.Elements = domain.ElementList{
		{ID: "e1", Type: domain.ElementStatic, Content: "Bonjour", X: 10, Y: 10, Width: 100, Height: 40},
	}

	s := Open(tpl, clock.SystemClock{})
	content := "changed"
	s.UpdateElement("e1", ElementPatch{Content: &content})

	if tpl.Elements[0].Content != "Bonjour" {
		t.Fatalf("session edit leaked into the caller's template")
	}
	if got, _ := s.Template().Element("e1"); got.Content != "changed" {
		t.Fatalf("session edit lost")
	}
}

func TestDirtyTracksSaveLifecycle(t *testing.T) {
	s := openTestSession(t)
	if s.Dirty() {
		t.Fatalf("fresh session should be clean")
	}
	s.AddElement(domain.ElementStatic, "Texte", "Bonjour")
	if !s.Dirty() {
		t.Fatalf("edit should mark the session dirty")
	}
	s.MarkSaved()
	if s.Dirty() {
		t.Fatalf("MarkSaved should clear the dirty flag")
	}
}

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewManager(clock.FixedClock{Instant: time.Unix(1700000000, 0)})
	id, session := m.Open(domain.Blank("Contrat", domain.CategoryContract))

	got, err := m.Get(id)
	if err != nil || got != session {
		t.Fatalf("expected to retrieve the open session, err=%v", err)
	}

	m.Close(id)
	if _, err := m.Get(id); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
