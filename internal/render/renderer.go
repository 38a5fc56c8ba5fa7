// Package render abstracts the display backend behind small
// interfaces, so simulation and drawing code never import the graphics
// engine directly.
package render

import (
	"errors"
	"image/color"
)

// ErrQuit signals a clean shutdown out of the game loop. Backends remap
// it to their own termination value.
var ErrQuit = errors.New("quit requested")

// Renderer is the main rendering interface that abstracts the
// underlying graphics engine. This allows swapping rendering backends
// without changing simulation logic.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image

	// Vector operations (for drawing shapes)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)

	// ActualFPS reports the measured frames per second. The backend owns
	// the run loop, so it owns the timing too.
	ActualFPS() float64
}

// Image represents a renderable image surface that can be drawn to or
// drawn from. It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)

	// Pixel upload. pix holds premultiplied RGBA bytes covering the
	// whole image, four per pixel.
	WritePixels(pix []byte)

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)

	// Resource management
	Dispose()
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy).
	Scale(sx, sy float64)
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// InputManager handles input from the user (keyboard, mouse, etc).
// Commands are discrete, so only just-pressed queries are exposed.
type InputManager interface {
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for common keys
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ // Turn left key
	KeyE // Turn right key
	KeyR // Remove viewer key
	KeyTab
	KeyEscape
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game represents the application interface that the engine will call.
type Game interface {
	// Update updates the simulation state. It is called every tick
	// (typically 60 times per second). Returning ErrQuit ends the loop
	// cleanly; any other error aborts it.
	Update() error

	// Draw draws the screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns
	// the logical screen size used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the run loop and
// window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game. This is a
	// blocking call that runs until the game ends.
	RunGame(game Game) error
}
