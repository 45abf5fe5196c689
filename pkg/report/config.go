package report

import "go.uber.org/zap"

// Config holds options for rendering the descendant chart
type Config struct {
	Title      string      // Heading on the first page; empty uses the root person's name
	PageSize   string      // fpdf page size name ("A4", "Letter", ...)
	Indent     float64     // Horizontal offset per generation, in points
	LineHeight float64     // Height of one text line, in points
	MaxDepth   int         // Deepest generation drawn with its own indent
	Notes      bool        // Print each person's notes under the name
	Logger     *zap.Logger // Receives warnings about characters the core fonts cannot show (nil = silent)
	Font       FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		PageSize:   "A4",
		Indent:     18,
		LineHeight: 14,
		MaxDepth:   20,
		Notes:      true,
		Font:       DefaultFont,
	}
}

// FontConfig contains font settings for the chart text
type FontConfig struct {
	Name      string  // Core font name (e.g., "Helvetica")
	Size      float64 // Size of person lines
	NoteSize  float64 // Size of note lines
	TitleSize float64 // Size of the heading
}

// DefaultFont uses Helvetica, one of the PDF core fonts, so no font files are needed
var DefaultFont = FontConfig{
	Name:      "Helvetica",
	Size:      10,
	NoteSize:  8,
	TitleSize: 14,
}
