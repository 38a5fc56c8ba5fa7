package game

// Layout constants for the composited window.
const (
	defaultStripHeight = 50
	stripPad           = 4
	viewerDotRadius    = 5
)

// Panel is a rectangular window region owned by one view.
type Panel struct {
	X, Y, W, H int
}

// Contains reports whether a screen point lies inside the panel.
func (p Panel) Contains(x, y int) bool {
	return x >= p.X && x < p.X+p.W && y >= p.Y && y < p.Y+p.H
}

// Options selects optional game features from the command line.
type Options struct {
	ShowRays    bool
	StripHeight int
	Debug       bool
}
