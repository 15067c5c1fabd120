package pesto

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the fixed-resolution offscreen canvas that all script
// drawing targets. It is owned by the Game, lives for the process
// lifetime, and is composited onto the window letterboxed with
// nearest-neighbor sampling so pixel boundaries stay crisp under
// scaling.
type Surface struct {
	image *ebiten.Image
	w, h  int
}

// NewSurface creates an offscreen canvas of the given size.
func NewSurface(w, h int) *Surface {
	return &Surface{
		image: ebiten.NewImage(w, h),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct drawing.
func (s *Surface) Image() *ebiten.Image {
	return s.image
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.w
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.h
}

// Fill fills the entire surface with the given color.
func (s *Surface) Fill(c color.Color) {
	s.image.Fill(c)
}
