package geom

import "sort"

// RGB is a color with components in [0,1]. It is visualization metadata
// only; converting to a display color space is the renderer's concern.
type RGB struct {
	R, G, B float64
}

// LerpRGB interpolates component-wise between two colors by t (clamped).
// Complexity: O(1)
func LerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
	}
}

// GradientStop anchors a color at parameter position T in [0,1].
type GradientStop struct {
	T float64
	C RGB
}

// Gradient is an ordered sequence of color stops over [0,1].
// Callers typically map station depth (normalized over the cave's vertical
// extent) through At to obtain a per-station shade.
type Gradient []GradientStop

// NewGradient returns a Gradient with the given stops sorted by T.
// Stops outside [0,1] are kept; At clamps queries, not stops.
// Complexity: O(n log n)
func NewGradient(stops ...GradientStop) Gradient {
	g := make(Gradient, len(stops))
	copy(g, stops)
	sort.Slice(g, func(i, j int) bool { return g[i].T < g[j].T })

	return g
}

// At returns the interpolated color at position t.
// Queries before the first stop return the first color, past the last stop
// the last color; an empty gradient returns the zero RGB.
// Complexity: O(log n)
func (g Gradient) At(t float64) RGB {
	if len(g) == 0 {
		return RGB{}
	}
	if t <= g[0].T {
		return g[0].C
	}
	last := len(g) - 1
	if t >= g[last].T {
		return g[last].C
	}

	// Locate the first stop with T ≥ t; interpolate inside [i-1, i].
	i := sort.Search(len(g), func(i int) bool { return g[i].T >= t })
	lo, hi := g[i-1], g[i]
	span := hi.T - lo.T
	if span == 0 {
		return hi.C
	}

	return LerpRGB(lo.C, hi.C, (t-lo.T)/span)
}
