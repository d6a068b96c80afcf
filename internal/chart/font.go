package chart

import (
	"fmt"
	"os"

	logging "housing-charts/internal/infra/log"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// fontSet hands out faces of one typeface at point sizes scaled for the target density.
type fontSet struct {
	ttf   *truetype.Font
	dpi   float64
	faces map[float64]font.Face
}

// loadFont parses path, or the embedded Go Regular face when path is empty.
func loadFont(path string, dpi float64) (*fontSet, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		data = b
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", path, err)
	}
	if path != "" {
		logging.LogInfo("Loaded chart font", zap.String("path", path))
	}
	return &fontSet{ttf: ttf, dpi: dpi, faces: map[float64]font.Face{}}, nil
}

func (f *fontSet) face(points float64) font.Face {
	if face, ok := f.faces[points]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{Size: points, DPI: f.dpi, Hinting: font.HintingFull})
	f.faces[points] = face
	return face
}
