package cloud

import (
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/feedscope/pkg/errors"
)

// Measurer reports the bounding box of text set at a font size.
type Measurer interface {
	Measure(text string, fontSize float64) (w, h float64)
}

// EstimateMeasurer approximates text boxes without font data:
// width is CharWidth·fontSize per rune and height is LineHeight·fontSize.
type EstimateMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// DefaultEstimateMeasurer returns the 0.6 em per rune, 1.0 em line estimate.
func DefaultEstimateMeasurer() EstimateMeasurer {
	return EstimateMeasurer{CharWidth: 0.6, LineHeight: 1.0}
}

// Measure implements [Measurer].
func (m EstimateMeasurer) Measure(text string, fontSize float64) (w, h float64) {
	return m.CharWidth * fontSize * float64(utf8.RuneCountInString(text)), m.LineHeight * fontSize
}

// GoRegularFamily is the font family name of the default [FontMeasurer] face.
const GoRegularFamily = "Go"

// FontMeasurer measures text with an OpenType font. Faces are created lazily
// per font size and cached. It is safe for concurrent use.
type FontMeasurer struct {
	font *sfnt.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewFontMeasurer parses a TrueType or OpenType font.
func NewFontMeasurer(data []byte) (*FontMeasurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font")
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// NewGoRegularMeasurer measures with the bundled Go Regular font.
func NewGoRegularMeasurer() (*FontMeasurer, error) {
	return NewFontMeasurer(goregular.TTF)
}

// Measure implements [Measurer]. The width is the advance of the whole string
// and the height is ascent plus descent. If no face can be created for the
// size, it falls back to [DefaultEstimateMeasurer].
func (m *FontMeasurer) Measure(text string, fontSize float64) (w, h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(fontSize)
	if err != nil {
		return DefaultEstimateMeasurer().Measure(text, fontSize)
	}
	metrics := face.Metrics()
	return toFloat(font.MeasureString(face, text)), toFloat(metrics.Ascent + metrics.Descent)
}

// face must be called with mu held.
func (m *FontMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Close releases the cached faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		f.Close()
		delete(m.faces, size)
	}
	return nil
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
