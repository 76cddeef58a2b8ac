package flatten

import "math"

// aciBase holds the first ten AutoCAD Color Index entries. 7 is drawn black
// on paper.
var aciBase = [10][3]uint8{
	{0, 0, 0},
	{255, 0, 0},
	{255, 255, 0},
	{0, 255, 0},
	{0, 255, 255},
	{0, 0, 255},
	{255, 0, 255},
	{0, 0, 0},
	{128, 128, 128},
	{192, 192, 192},
}

// ACIToRGB maps an AutoCAD Color Index to RGB for exporters. Indexes 10-249
// are approximated from their hue family and shade; 250-255 are greys.
func ACIToRGB(aci int) (r, g, b uint8) {
	switch {
	case aci >= 0 && aci < 10:
		c := aciBase[aci]
		return c[0], c[1], c[2]
	case aci >= 250 && aci <= 255:
		v := uint8(51 + (aci-250)*40)
		return v, v, v
	case aci >= 10 && aci < 250:
		hue := float64((aci-10)/10) * 15 // 24 hue families
		shade := (aci - 10) % 10
		value := 1.0 - float64(shade/2)*0.2
		sat := 1.0
		if shade%2 == 1 {
			sat = 0.5
		}
		return hsvToRGB(hue, sat, value)
	default:
		return 0, 0, 0
	}
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := v - c
	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
