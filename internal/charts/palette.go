package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette/brewer"
)

// brewerSizes is the largest palette each qualitative scheme offers.
var brewerSizes = map[string]int{"Set1": 9, "Set2": 8, "Set3": 12}

// paletteColors returns a ColorBrewer qualitative palette; unknown names fall back to Set2.
func paletteColors(name string) ([]color.Color, error) {
	n, ok := brewerSizes[name]
	if !ok {
		name, n = "Set2", brewerSizes["Set2"]
	}
	p, err := brewer.GetPalette(brewer.TypeQualitative, name, n)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", name, err)
	}
	return p.Colors(), nil
}

// pick cycles through colors.
func pick(colors []color.Color, i int) color.Color { return colors[i%len(colors)] }

// hexOf formats c as #RRGGBB for the HTML renderer.
func hexOf(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
