package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// Stops are (t,R,G,B) values with t∈[0,1] the position and R,G,B∈[0,1], ordered by position.
type Stops [][4]float64

// Epsilon runs from deep blue at small distances over green to yellow at large distances.
var Epsilon = Stops{
	{0.0, 0.267, 0.005, 0.329},
	{0.25, 0.229, 0.322, 0.546},
	{0.5, 0.128, 0.567, 0.551},
	{0.75, 0.369, 0.789, 0.383},
	{1.0, 0.993, 0.906, 0.144},
}

func interpolate(a, b, t float64) float64 {
	return a*(1.0-t) + b*t
}

// At returns the color at position t, positions outside the stops take the color of the nearest stop.
func (stops Stops) At(t float64) color.RGBA {
	if len(stops) == 0 {
		return color.RGBA{}
	}
	index := 0
	for ; index < len(stops) && stops[index][0] < t; index++ {
	}

	var rgb [3]float64
	if index == 0 {
		rgb = [3]float64{stops[0][1], stops[0][2], stops[0][3]}
	} else if index == len(stops) {
		rgb = [3]float64{stops[index-1][1], stops[index-1][2], stops[index-1][3]}
	} else {
		prev, next := stops[index-1], stops[index]
		s := (t - prev[0]) / (next[0] - prev[0])
		rgb = [3]float64{
			interpolate(prev[1], next[1], s),
			interpolate(prev[2], next[2], s),
			interpolate(prev[3], next[3], s),
		}
	}
	return color.RGBA{
		uint8(rgb[0]*255.0 + 0.5),
		uint8(rgb[1]*255.0 + 0.5),
		uint8(rgb[2]*255.0 + 0.5),
		255,
	}
}

type colors []color.Color

func (cs colors) Colors() []color.Color {
	return cs
}

// Palette returns n colors evenly spread over the stops.
func (stops Stops) Palette(n int) palette.Palette {
	cs := make(colors, n)
	for i := range cs {
		t := 0.0
		if 1 < n {
			t = float64(i) / float64(n-1)
		}
		cs[i] = stops.At(t)
	}
	return cs
}
