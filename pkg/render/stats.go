package render

import "log/slog"

// FrameStats counts what happened to the faces of the last frame.
type FrameStats struct {
	Faces     int // Faces submitted
	Culled    int // Dropped as back-facing
	Clipped   int // Entirely outside the frustum
	Invalid   int // Skipped for out-of-range vertex indices
	Triangles int // Triangles produced after clipping
}

// Visible returns the number of faces that produced at least one triangle.
func (s FrameStats) Visible() int {
	return s.Faces - s.Culled - s.Clipped - s.Invalid
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("faces", s.Faces),
		slog.Int("culled", s.Culled),
		slog.Int("clipped", s.Clipped),
		slog.Int("invalid", s.Invalid),
		slog.Int("triangles", s.Triangles),
	)
}
