package render

import (
	"html/template"
	"strings"
	"testing"

	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

func testTemplate() domain.Template {
	return domain.Template{
		ID:           "tpl-test",
		Name:         "Facture Test",
		Category:     domain.CategoryInvoice,
		CanvasWidth:  595,
		CanvasHeight: 842,
		Elements: domain.ElementList{
			{ID: "e1", Type: domain.ElementVariable, Content: "Client: {{client_name}}", X: 40, Y: 120, Width: 280, Height: 40, FontSize: 12},
			{ID: "e2", Type: domain.ElementLogo, Content: "DRIVEFLOW {{client_name}}", X: 40, Y: 40, Width: 160, Height: 70},
			{ID: "e3", Type: domain.ElementChecklist, Content: domain.ChecklistSecurity, X: 40, Y: 390, Width: 515, Height: 250},
			{ID: "e4", Type: domain.ElementTable, X: 40, Y: 360, Width: 515, Height: 120},
			{ID: "e5", Type: domain.ElementDivider, X: 40, Y: 300, Width: 515, Height: 2},
		},
	}
}

func TestRenderHTMLPageDimensionsMatchCanvas(t *testing.T) {
	r := testRenderer(t, "en")
	html, err := r.RenderHTML(RenderInput{Template: testTemplate(), Data: testData()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "width: 595px") || !strings.Contains(html, "height: 842px") {
		t.Fatalf("page container does not match canvas dimensions")
	}
}

func TestRenderHTMLSubstitutesVariableElements(t *testing.T) {
	r := testRenderer(t, "en")
	html, err := r.RenderHTML(RenderInput{Template: testTemplate(), Data: testData()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "Client: Karim Benali") {
		t.Fatalf("variable element not substituted")
	}
}

func TestRenderHTMLLogoIsNotSubstituted(t *testing.T) {
	r := testRenderer(t, "en")
	html, err := r.RenderHTML(RenderInput{Template: testTemplate(), Data: testData()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// The wordmark keeps its raw content, token included.
	if !strings.Contains(html, "DRIVEFLOW {{client_name}}") {
		t.Fatalf("logo content was substituted")
	}
}

func TestRenderHTMLChecklistShowsSecurityItems(t *testing.T) {
	r := testRenderer(t, "en")
	html, err := r.RenderHTML(RenderInput{Template: testTemplate(), Data: testData()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "SÉCURITÉ") {
		t.Fatalf("checklist title missing")
	}
	for _, item := range domain.ChecklistItems(domain.ChecklistSecurity) {
		// html/template escapes item labels ("Feux & Phares"
		// becomes "Feux &amp; Phares" in the output).
		if !strings.Contains(html, template.HTMLEscapeString(item)) {
			t.Fatalf("checklist item %q missing", item)
		}
	}
}

func TestRenderHTMLTableShowsIllustrativeRow(t *testing.T) {
	r := testRenderer(t, "en")
	html, err := r.RenderHTML(RenderInput{Template: testTemplate(), Data: testData()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "LOCATION VÉHICULE Volkswagen Golf 8") {
		t.Fatalf("table row vehicle missing")
	}
	if !strings.Contains(html, "137,500 DZ") {
		t.Fatalf("table row total missing")
	}
}

func TestRenderHTMLPositionsElementsAbsolutely(t *testing.T) {
	r := testRenderer(t, "en")
	html, err := r.RenderHTML(RenderInput{Template: testTemplate(), Data: testData()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "left:40px;top:120px;width:280px;") {
		t.Fatalf("element position missing from inline style")
	}
}

func TestRenderHTMLIsDeterministicAcrossSurfaces(t *testing.T) {
	// The billing, operations and planner modals all call the same
	// renderer; same input must give byte-identical output.
	r := testRenderer(t, "en")
	input := RenderInput{Template: testTemplate(), Data: testData()}

	first, err := r.RenderHTML(input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := r.RenderHTML(input)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Fatalf("render output is not deterministic")
	}
}

func TestRenderHTMLDoesNotMutateTemplate(t *testing.T) {
	r := testRenderer(t, "en")
	tpl := testTemplate()
	original := tpl.Elements[0].Content

	if _, err := r.RenderHTML(RenderInput{Template: tpl, Data: testData()}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if tpl.Elements[0].Content != original {
		t.Fatalf("template mutated by render")
	}
}

func TestSanitizeColorRejectsInjection(t *testing.T) {
	if got := sanitizeColor("#2563eb", "#111827"); got != "#2563eb" {
		t.Fatalf("valid color rejected: %q", got)
	}
	if got := sanitizeColor("red;}</style>", "#111827"); got != "#111827" {
		t.Fatalf("invalid color not replaced: %q", got)
	}
	if got := sanitizeColor("transparent", "#111827"); got != "transparent" {
		t.Fatalf("transparent should pass: %q", got)
	}
}

func TestStackingOrderSortsByZIndexStable(t *testing.T) {
	elements := domain.ElementList{
		{ID: "a", ZIndex: 20},
		{ID: "b", ZIndex: 10},
		{ID: "c", ZIndex: 10},
	}
	ordered := stackingOrder(elements)
	if ordered[0].ID != "b" || ordered[1].ID != "c" || ordered[2].ID != "a" {
		t.Fatalf("unexpected order: %v, %v, %v", ordered[0].ID, ordered[1].ID, ordered[2].ID)
	}
	if elements[0].ID != "a" {
		t.Fatalf("input slice mutated")
	}
}
