// Package chart turns query results into chart images. Each query position has a fixed
// recipe in Recipes; Render resolves the recipe against a result into a Plot and paints
// it onto a canvas owned by the returned Figure.
package chart

import (
	"errors"
	"fmt"
	"image"
	"io"

	"housing-charts/internal/dataset"

	"github.com/fogleman/gg"
)

// ErrUnknownRecipe is returned for an index with no entry in Recipes.
var ErrUnknownRecipe = errors.New("no chart recipe for query")

// Figure is a rendered chart. It owns its canvas; nothing is shared between figures.
type Figure struct {
	Index int
	Spec  Spec
	Plot  *Plot

	dc *gg.Context
}

func (f *Figure) Image() image.Image { return f.dc.Image() }

func (f *Figure) EncodePNG(w io.Writer) error { return f.dc.EncodePNG(w) }

// Bounds returns the figure size in pixels.
func (f *Figure) Bounds() (int, int) { return f.dc.Width(), f.dc.Height() }

// Renderer paints figures at a fixed pixel density with one typeface.
type Renderer struct {
	dpi   float64
	fonts *fontSet
}

// NewRenderer uses the embedded Go Regular font when fontPath is empty.
func NewRenderer(dpi float64, fontPath string) (*Renderer, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi must be positive, got %v", dpi)
	}
	fonts, err := loadFont(fontPath, dpi)
	if err != nil {
		return nil, err
	}
	return &Renderer{dpi: dpi, fonts: fonts}, nil
}

// Render draws table with the recipe for the zero-based query index.
func (r *Renderer) Render(table *dataset.Table, index int) (*Figure, error) {
	if index < 0 || index >= len(Recipes) {
		return nil, fmt.Errorf("%w %d", ErrUnknownRecipe, index+1)
	}
	spec := Recipes[index]

	plot, err := Build(spec, table)
	if err != nil {
		return nil, fmt.Errorf("chart %d (%s): %w", index+1, spec.Kind, err)
	}

	return &Figure{
		Index: index,
		Spec:  spec,
		Plot:  plot,
		dc:    draw(plot, r.fonts, r.dpi).dc,
	}, nil
}
