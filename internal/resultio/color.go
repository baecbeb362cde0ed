package resultio

import (
	"fmt"
	"hash/fnv"
	"math"
)

// goldenAngle is the hue step (degrees) used to spread per-product colors
// evenly regardless of how many distinct product ids exist, rather than
// bucketing a raw hash into 360 discrete hues.
const goldenAngle = 137.50776405003785

// ColorForProduct returns a stable "#RRGGBB" color for a product id: a
// golden-angle-spaced hue derived from an FNV hash, with saturation and
// lightness bands matching the reference visualizer (65-85% / 55-70%).
func ColorForProduct(productID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(productID))
	sum := h.Sum32()

	hue := math.Mod(float64(sum)*goldenAngle, 360)
	saturation := 65 + float64((sum>>8)%20)
	lightness := 55 + float64((sum>>16)%15)

	r, g, b := hslToRGB(hue, saturation/100, lightness/100)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts HSL (hue in degrees, saturation/lightness in [0,1]) to
// 8-bit RGB channels, following the same piecewise-hue arithmetic as the
// reference HSL->RGB conversion.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}

	return uint8((rf + m) * 255), uint8((gf + m) * 255), uint8((bf + m) * 255)
}
