package output

// Palette maps a stretched value in [0, 1] to an RGB color.
type Palette func(t float64) (r, g, b uint8)

// Grayscale maps low to black, high to white.
func Grayscale(t float64) (uint8, uint8, uint8) {
	v := uint8(t * 255)
	return v, v, v
}

// heatStops runs cool blue through yellow to deep red, the conventional
// surface temperature ramp.
var heatStops = [][3]float64{
	{0, 0, 255},
	{0, 255, 255},
	{0, 255, 0},
	{255, 255, 0},
	{255, 0, 0},
}

// Heat interpolates the temperature ramp.
func Heat(t float64) (uint8, uint8, uint8) {
	if t <= 0 {
		s := heatStops[0]
		return uint8(s[0]), uint8(s[1]), uint8(s[2])
	}
	if t >= 1 {
		s := heatStops[len(heatStops)-1]
		return uint8(s[0]), uint8(s[1]), uint8(s[2])
	}
	pos := t * float64(len(heatStops)-1)
	k := int(pos)
	frac := pos - float64(k)
	lo, hi := heatStops[k], heatStops[k+1]
	return uint8(lo[0] + (hi[0]-lo[0])*frac),
		uint8(lo[1] + (hi[1]-lo[1])*frac),
		uint8(lo[2] + (hi[2]-lo[2])*frac)
}
