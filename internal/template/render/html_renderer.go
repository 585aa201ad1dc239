package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"

	"github.com/abdouni493/auto-rental-application/internal/clock"
	"github.com/abdouni493/auto-rental-application/internal/config"
	"github.com/abdouni493/auto-rental-application/internal/template/domain"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      background: #ffffff;
      color: #111827;
      font-family: "Inter", "Helvetica Neue", Arial, sans-serif;
    }
    .page {
      position: relative;
      width: {{.Width}}px;
      height: {{.Height}}px;
      margin: 0 auto;
    }
    .element {
      position: absolute;
      white-space: pre-wrap;
    }
    .logo {
      width: 100%;
      height: 100%;
      display: flex;
      align-items: center;
      justify-content: center;
      font-weight: 900;
      text-transform: uppercase;
      opacity: 0.85;
    }
    .qr {
      width: 100%;
      height: 100%;
      display: flex;
      align-items: center;
      justify-content: center;
      font-size: 28px;
      color: #9ca3af;
    }
    .checklist h5 {
      margin: 0 0 8px;
      font-size: 10px;
      text-transform: uppercase;
      border-bottom: 1px solid #e5e7eb;
      padding-bottom: 4px;
    }
    .checklist-grid {
      display: grid;
      grid-template-columns: 1fr 1fr;
      column-gap: 18px;
      row-gap: 4px;
    }
    .checklist-grid div {
      display: flex;
      justify-content: space-between;
      border-bottom: 1px solid #f3f4f6;
      padding-bottom: 2px;
      font-size: 8px;
      font-weight: 700;
    }
    .checklist-grid span { color: #2563eb; font-size: 9px; }
    table.items {
      width: 100%;
      border-collapse: collapse;
      border-top: 2px solid #111827;
      font-size: 9px;
      text-transform: uppercase;
    }
    table.items th, table.items td {
      padding: 6px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    table.items th:last-child, table.items td:last-child { text-align: right; }
    .fuel {
      width: 100%;
      height: 100%;
      display: flex;
      align-items: center;
      justify-content: space-between;
      padding: 0 12px;
      font-size: 9px;
      font-weight: 900;
      text-transform: uppercase;
    }
    .fuel .caption { opacity: 0.4; font-size: 7px; margin-bottom: 2px; }
    .signature {
      width: 100%;
      height: 100%;
      display: flex;
      align-items: flex-end;
      justify-content: center;
      padding-bottom: 6px;
      font-size: 9px;
      font-weight: 700;
      text-transform: uppercase;
      color: #6b7280;
    }
  </style>
</head>
<body>
  <div class="page">
    {{range .Elements}}
    <div class="element" style="{{.Style}}">
      {{if eq .Kind "logo"}}<div class="logo">{{.Text}}</div>
      {{else if eq .Kind "qr"}}<div class="qr">&#9646;&#9646;&#9646;</div>
      {{else if eq .Kind "checklist"}}
      <div class="checklist">
        <h5>{{.ChecklistTitle}}</h5>
        <div class="checklist-grid">
          {{range .ChecklistItems}}<div>{{.}}<span>&#10003;</span></div>{{end}}
        </div>
      </div>
      {{else if eq .Kind "table"}}
      <table class="items">
        <thead><tr><th>Article</th><th>Qt&eacute;</th><th>HT</th></tr></thead>
        <tbody><tr><td>{{.TableRow.Description}}</td><td>--</td><td>{{.TableRow.Total}}</td></tr></tbody>
      </table>
      {{else if eq .Kind "fuel"}}
      <div class="fuel">
        <div><div class="caption">KM</div><div>--</div></div>
        <div><div class="caption">FUEL</div><div>&#9981; PLEIN</div></div>
      </div>
      {{else if eq .Kind "signature"}}<div class="signature">{{.Text}}</div>
      {{else if eq .Kind "divider"}}
      {{else}}{{.Text}}{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-]+$`)
	fontWeightFilter = regexp.MustCompile(`^[1-9]00$`)
)

type pageView struct {
	Title    string
	Width    int
	Height   int
	Elements []elementView
}

type elementView struct {
	Kind           string
	Style          template.CSS
	Text           string
	ChecklistTitle string
	ChecklistItems []string
	TableRow       tableRow
}

type tableRow struct {
	Description string
	Total       string
}

// HTMLRenderer reproduces a template as a fixed-size HTML page. Every
// print surface shares one instance, so a billing invoice and a planner
// contract render through identical code.
type HTMLRenderer struct {
	tpl *template.Template
	sub substituter
}

func NewRenderer(cfg config.Config, clk clock.Clock) Renderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("document").Parse(documentHTMLTemplate)),
		sub: newSubstituter(cfg.Locale, clk),
	}
}

// Substitute resolves placeholder tokens in a content string against the
// business record. Unrecognized tokens pass through unchanged.
func (r *HTMLRenderer) Substitute(content string, data DocumentData) string {
	return r.sub.substitute(content, data)
}

// RenderHTML lays the template's elements out at their absolute pixel
// positions inside a page of exactly CanvasWidth by CanvasHeight. No
// reflow, no pagination; overflow simply renders outside the nominal box.
func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	tpl := input.Template
	if tpl.CanvasWidth <= 0 {
		tpl.CanvasWidth = domain.DefaultCanvasWidth
	}
	if tpl.CanvasHeight <= 0 {
		tpl.CanvasHeight = domain.DefaultCanvasHeight
	}

	page := pageView{
		Title:    tpl.Name,
		Width:    tpl.CanvasWidth,
		Height:   tpl.CanvasHeight,
		Elements: make([]elementView, 0, len(tpl.Elements)),
	}
	for _, element := range stackingOrder(tpl.Elements) {
		page.Elements = append(page.Elements, r.elementView(element, input.Data))
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stackingOrder sorts by zIndex, keeping insertion order for equal values.
func stackingOrder(elements domain.ElementList) []domain.Element {
	ordered := make([]domain.Element, len(elements))
	copy(ordered, elements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ZIndex < ordered[j].ZIndex
	})
	return ordered
}

func (r *HTMLRenderer) elementView(element domain.Element, data DocumentData) elementView {
	view := elementView{Style: elementStyle(element)}

	switch element.Type {
	case domain.ElementLogo:
		// Logo content is a stylized wordmark, never substituted.
		view.Kind = "logo"
		view.Text = element.Content
	case domain.ElementQRCode:
		view.Kind = "qr"
	case domain.ElementChecklist:
		view.Kind = "checklist"
		if element.Content == domain.ChecklistEquipment {
			view.ChecklistTitle = "ÉQUIPEMENT"
		} else {
			view.ChecklistTitle = "SÉCURITÉ"
		}
		view.ChecklistItems = domain.ChecklistItems(element.Content)
	case domain.ElementTable:
		// A single illustrative line item; real itemization is out of
		// scope for the print surface.
		view.Kind = "table"
		view.TableRow = tableRow{
			Description: r.sub.substitute("LOCATION VÉHICULE "+TokenVehicleName, data),
			Total:       r.sub.substitute(TokenTotalAmount, data) + " DZ",
		}
	case domain.ElementFuelMileage:
		view.Kind = "fuel"
	case domain.ElementSignatureArea:
		view.Kind = "signature"
		view.Text = element.Content
	case domain.ElementDivider:
		view.Kind = "divider"
	default:
		view.Kind = "text"
		view.Text = r.sub.substitute(element.Content, data)
	}
	return view
}

// elementStyle renders the element's positional and style envelope as an
// inline style. Color and font values are sanitized before they reach the
// page.
func elementStyle(element domain.Element) template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "left:%dpx;top:%dpx;width:%dpx;", element.X, element.Y, element.Width)
	if element.Type == domain.ElementDivider {
		fmt.Fprintf(&b, "height:%dpx;", element.Height)
	} else if element.Height > 0 {
		fmt.Fprintf(&b, "min-height:%dpx;", element.Height)
	}
	if element.FontSize > 0 {
		fmt.Fprintf(&b, "font-size:%dpx;", element.FontSize)
	}
	fmt.Fprintf(&b, "color:%s;", sanitizeColor(element.Color, "#111827"))
	fmt.Fprintf(&b, "background-color:%s;", sanitizeColor(element.BackgroundColor, "transparent"))
	fmt.Fprintf(&b, "font-family:%s;", sanitizeFont(element.FontFamily))
	fmt.Fprintf(&b, "font-weight:%s;", sanitizeFontWeight(element.FontWeight))
	fmt.Fprintf(&b, "text-align:%s;", sanitizeAlign(element.TextAlign))
	fmt.Fprintf(&b, "border-radius:%dpx;", element.BorderRadius)
	fmt.Fprintf(&b, "padding:%dpx;", element.Padding)
	if element.BorderWidth > 0 {
		fmt.Fprintf(&b, "border:%dpx solid %s;", element.BorderWidth, sanitizeColor(element.BorderColor, "#e5e7eb"))
	}
	if element.LineHeight > 0 {
		fmt.Fprintf(&b, "line-height:%.2f;", element.LineHeight)
	}
	fmt.Fprintf(&b, "opacity:%.2f;", clampOpacity(element.Opacity))
	if element.LetterSpacing != 0 {
		fmt.Fprintf(&b, "letter-spacing:%.2fpx;", element.LetterSpacing)
	}
	fmt.Fprintf(&b, "z-index:%d;", element.ZIndex)
	return template.CSS(b.String())
}

func sanitizeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "transparent" {
		return trimmed
	}
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}

func sanitizeFont(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !fontFamilyFilter.MatchString(trimmed) {
		return "Inter"
	}
	return trimmed
}

func sanitizeFontWeight(value string) string {
	trimmed := strings.TrimSpace(value)
	if fontWeightFilter.MatchString(trimmed) {
		return trimmed
	}
	return "400"
}

func sanitizeAlign(value domain.TextAlign) string {
	switch value {
	case domain.AlignCenter, domain.AlignRight:
		return string(value)
	default:
		return string(domain.AlignLeft)
	}
}

// clampOpacity treats the zero value as "unset": templates persisted
// without an explicit opacity stay fully visible.
func clampOpacity(value float64) float64 {
	if value <= 0 || value >= 1 {
		return 1
	}
	return value
}
