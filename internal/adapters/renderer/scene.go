package renderer

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"github.com/bft-labs/wallbridge/internal/domain"
)

// petalsPerFlower is the number of petals drawn around each flower centre.
const petalsPerFlower = 5

// Scene draws one frame into a drawing context.
type Scene interface {
	Draw(dc *gg.Context, prefs domain.Preferences, frame uint64) error
}

// FlowerScene draws a field of swaying flowers.
type FlowerScene struct{}

// Draw clears the context with the background colour and draws
// prefs.FlowerCount flowers. Flower placement is a pure function of the
// flower index and the context size, so a resize keeps the layout.
func (FlowerScene) Draw(dc *gg.Context, prefs domain.Preferences, frame uint64) error {
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.ClearWithColor(gg.Hex(prefs.Background))

	radius := math.Min(w, h) / 14
	t := float64(frame) / 30

	for i := 0; i < prefs.FlowerCount; i++ {
		// Golden-ratio spacing spreads flowers without a random source.
		fx := math.Mod(float64(i)*0.618034+0.31, 1)
		fy := math.Mod(float64(i)*0.414214+0.57, 1)
		cx := radius + fx*(w-2*radius)
		cy := radius + fy*(h-2*radius)
		sway := math.Sin(t+float64(i)) * 0.25

		petal := gg.Hex(prefs.PetalColors[i%len(prefs.PetalColors)])
		dc.Push()
		dc.RotateAbout(sway, cx, cy)
		dc.SetRGBA(petal.R, petal.G, petal.B, 0.9)
		for p := 0; p < petalsPerFlower; p++ {
			a := 2 * math.Pi * float64(p) / petalsPerFlower
			dc.DrawCircle(cx+math.Cos(a)*radius*0.6, cy+math.Sin(a)*radius*0.6, radius*0.45)
		}
		if err := dc.Fill(); err != nil {
			dc.Pop()
			return fmt.Errorf("fill petals of flower %d: %w", i, err)
		}
		dc.SetRGB(0.98, 0.86, 0.35)
		dc.DrawCircle(cx, cy, radius*0.3)
		if err := dc.Fill(); err != nil {
			dc.Pop()
			return fmt.Errorf("fill centre of flower %d: %w", i, err)
		}
		dc.Pop()
	}
	return nil
}
