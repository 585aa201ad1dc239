package editor

import "github.com/abdouni493/auto-rental-application/internal/template/domain"

// ElementPatch carries property-panel edits. Only non-nil fields are
// applied, so untouched properties keep their values.
type ElementPatch struct {
	Label           *string           `json:"label,omitempty"`
	Content         *string           `json:"content,omitempty"`
	X               *int              `json:"x,omitempty"`
	Y               *int              `json:"y,omitempty"`
	Width           *int              `json:"width,omitempty"`
	Height          *int              `json:"height,omitempty"`
	FontSize        *int              `json:"fontSize,omitempty"`
	Color           *string           `json:"color,omitempty"`
	BackgroundColor *string           `json:"backgroundColor,omitempty"`
	FontFamily      *string           `json:"fontFamily,omitempty"`
	FontWeight      *string           `json:"fontWeight,omitempty"`
	TextAlign       *domain.TextAlign `json:"textAlign,omitempty"`
	BorderRadius    *int              `json:"borderRadius,omitempty"`
	Padding         *int              `json:"padding,omitempty"`
	BorderWidth     *int              `json:"borderWidth,omitempty"`
	BorderColor     *string           `json:"borderColor,omitempty"`
	LineHeight      *float64          `json:"lineHeight,omitempty"`
	Opacity         *float64          `json:"opacity,omitempty"`
	LetterSpacing   *float64          `json:"letterSpacing,omitempty"`
	ZIndex          *int              `json:"zIndex,omitempty"`

	Checklist domain.ChecklistData `json:"checklist,omitempty"`
}

func (p ElementPatch) apply(element *domain.Element) {
	if p.Label != nil {
		element.Label = *p.Label
	}
	if p.Content != nil {
		element.Content = *p.Content
	}
	if p.X != nil && *p.X >= 0 {
		element.X = *p.X
	}
	if p.Y != nil && *p.Y >= 0 {
		element.Y = *p.Y
	}
	if p.Width != nil && *p.Width > 0 {
		element.Width = *p.Width
	}
	if p.Height != nil && *p.Height > 0 {
		element.Height = *p.Height
	}
	if p.FontSize != nil {
		element.FontSize = *p.FontSize
	}
	if p.Color != nil {
		element.Color = *p.Color
	}
	if p.BackgroundColor != nil {
		element.BackgroundColor = *p.BackgroundColor
	}
	if p.FontFamily != nil {
		element.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		element.FontWeight = *p.FontWeight
	}
	if p.TextAlign != nil {
		element.TextAlign = *p.TextAlign
	}
	if p.BorderRadius != nil {
		element.BorderRadius = *p.BorderRadius
	}
	if p.Padding != nil {
		element.Padding = *p.Padding
	}
	if p.BorderWidth != nil {
		element.BorderWidth = *p.BorderWidth
	}
	if p.BorderColor != nil {
		element.BorderColor = *p.BorderColor
	}
	if p.LineHeight != nil {
		element.LineHeight = *p.LineHeight
	}
	if p.Opacity != nil {
		element.Opacity = *p.Opacity
	}
	if p.LetterSpacing != nil {
		element.LetterSpacing = *p.LetterSpacing
	}
	if p.ZIndex != nil {
		element.ZIndex = *p.ZIndex
	}
	if p.Checklist != nil && element.Type == domain.ElementChecklist {
		element.Checklist = p.Checklist
	}
}
