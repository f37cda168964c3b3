package export

// PageSize represents paper dimensions in centimeters.
type PageSize struct {
	Width  float64 // Width in centimeters.
	Height float64 // Height in centimeters.
}

// Standard paper sizes.
var (
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// OrientationDefault takes the orientation from the defaults, which
	// is Portrait unless configured otherwise.
	OrientationDefault Orientation = iota
	// Portrait is the vertical orientation.
	Portrait
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// Margin represents page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig is the paper layout handed to a [Renderer].
type PageConfig struct {
	// Size specifies the paper size. Defaults to A4.
	Size PageSize

	// Orientation specifies portrait or landscape. The zero value takes
	// the default orientation.
	Orientation Orientation

	// Margin specifies page margins in centimeters. Defaults to 1 cm on all sides.
	Margin Margin

	// Scale of the element rendering, between 0.1 and 2.0. Defaults to 1.0.
	Scale float64

	// OmitBackground disables printing of background colors and images,
	// which are printed by default.
	OmitBackground bool

	// DisplayHeaderFooter enables the header and footer templates.
	DisplayHeaderFooter bool

	// HeaderTemplate is an HTML template for the print header, using
	// Chrome's classes: date, title, url, pageNumber, totalPages.
	HeaderTemplate string

	// FooterTemplate is an HTML template for the print footer.
	FooterTemplate string

	// PreferCSSPageSize gives precedence to any CSS @page size declared
	// in the document over the Size field.
	PreferCSSPageSize bool
}

// DefaultPageConfig returns the layout used for zero-value fields.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:        A4,
		Orientation: Portrait,
		Margin:      UniformMargin(1.0),
		Scale:       1.0,
	}
}

// merged returns p with every zero field replaced by the value from d.
func (p PageConfig) merged(d PageConfig) PageConfig {
	r := p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Orientation == OrientationDefault {
		r.Orientation = d.Orientation
	}
	if r.Orientation == OrientationDefault {
		r.Orientation = Portrait
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	if r.Scale <= 0 {
		r.Scale = d.Scale
	}
	switch {
	case r.Scale < 0.1:
		r.Scale = 0.1
	case r.Scale > 2.0:
		r.Scale = 2.0
	}
	r.OmitBackground = r.OmitBackground || d.OmitBackground
	r.DisplayHeaderFooter = r.DisplayHeaderFooter || d.DisplayHeaderFooter
	if r.HeaderTemplate == "" {
		r.HeaderTemplate = d.HeaderTemplate
	}
	if r.FooterTemplate == "" {
		r.FooterTemplate = d.FooterTemplate
	}
	r.PreferCSSPageSize = r.PreferCSSPageSize || d.PreferCSSPageSize
	return r
}

func cmToInches(cm float64) float64 {
	return cm / 2.54
}

// PaperInches returns the paper width and height in inches, accounting
// for orientation.
func (p PageConfig) PaperInches() (width, height float64) {
	w := cmToInches(p.Size.Width)
	h := cmToInches(p.Size.Height)
	if p.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// MarginInches returns the margins converted to inches.
func (p PageConfig) MarginInches() (top, right, bottom, left float64) {
	return cmToInches(p.Margin.Top),
		cmToInches(p.Margin.Right),
		cmToInches(p.Margin.Bottom),
		cmToInches(p.Margin.Left)
}
