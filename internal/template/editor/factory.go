package editor

import (
	"fmt"
	"math/rand"

	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

// Factory geometry defaults. Wide types span the page's content width;
// everything else starts as a small text block.
const (
	defaultX          = 50
	defaultY          = 150
	defaultWidth      = 200
	defaultHeight     = 40
	wideWidth         = 500
	dividerHeight     = 2
	checklistHeight   = 180
	defaultFontSize   = 12
	defaultLineHeight = 1.4
)

func isWideType(t domain.ElementType) bool {
	switch t {
	case domain.ElementTable, domain.ElementChecklist, domain.ElementDivider:
		return true
	default:
		return false
	}
}

// newElement builds an element with type-appropriate defaults. The id is
// type + timestamp + random suffix; the session retries the suffix until
// the id is unique among everything it has handed out.
func (s *Session) newElement(elementType domain.ElementType, label, content string) domain.Element {
	element := domain.Element{
		ID:      s.uniqueID(elementType),
		Type:    elementType,
		Label:   label,
		Content: content,

		X:      defaultX,
		Y:      defaultY,
		Width:  defaultWidth,
		Height: defaultHeight,

		FontSize:        defaultFontSize,
		Color:           "#111827",
		BackgroundColor: "transparent",
		FontFamily:      "Inter",
		FontWeight:      "400",
		TextAlign:       domain.AlignLeft,
		BorderRadius:    0,
		Padding:         5,
		BorderWidth:     0,
		BorderColor:     "#e5e7eb",
		LineHeight:      defaultLineHeight,
		Opacity:         1,
		LetterSpacing:   0,
		ZIndex:          10,
	}

	if isWideType(elementType) {
		element.Width = wideWidth
	}
	switch elementType {
	case domain.ElementDivider:
		element.Height = dividerHeight
	case domain.ElementChecklist:
		element.Height = checklistHeight
		element.Checklist = defaultChecklist(content)
	}

	return element
}

// defaultChecklist flags every inspection item of the selected set as
// present. Real inspection outcomes are not wired in anywhere yet, so a
// fresh checklist block starts fully checked.
func defaultChecklist(discriminator string) domain.ChecklistData {
	items := domain.ChecklistItems(discriminator)
	data := make(domain.ChecklistData, len(items))
	for _, item := range items {
		data[item] = true
	}
	return data
}

func (s *Session) uniqueID(elementType domain.ElementType) string {
	for {
		id := fmt.Sprintf("%s-%d-%03d", elementType, s.clock.Now().UnixMilli(), rand.Intn(1000))
		if _, taken := s.issuedIDs[id]; !taken {
			if _, inTemplate := s.working.Element(id); !inTemplate {
				s.issuedIDs[id] = struct{}{}
				return id
			}
		}
	}
}
