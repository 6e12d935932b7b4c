package render

// DepthBuffer stores one depth value per pixel. 1.0 means nothing has been
// drawn; smaller values are closer to the camera.
type DepthBuffer struct {
	Width  int
	Height int
	Depth  []float64
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Resize reallocates and clears when the dimensions change.
func (d *DepthBuffer) Resize(width, height int) {
	if width == d.Width && height == d.Height {
		return
	}
	d.Width = width
	d.Height = height
	d.Depth = make([]float64, width*height)
	d.Clear()
}

// Clear resets every entry to 1.0.
func (d *DepthBuffer) Clear() {
	if len(d.Depth) == 0 {
		return
	}
	d.Depth[0] = 1
	for filled := 1; filled < len(d.Depth); filled *= 2 {
		copy(d.Depth[filled:], d.Depth[:filled])
	}
}

// TestAndSet stores depth and reports true when it is strictly less than
// the stored value. Out-of-bounds coordinates always fail.
func (d *DepthBuffer) TestAndSet(x, y int, depth float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if !(depth < d.Depth[i]) {
		return false
	}
	d.Depth[i] = depth
	return true
}
