package scene

import (
	"math"

	"github.com/aretw0/arbor/pkg/geom"
)

// heading is the local direction a turtle with identity orientation moves in.
var heading = geom.Vector3{Y: 1}

// Segment is one tapered section of a branch, in node-local coordinates.
type Segment struct {
	Start      geom.Point3 `json:"start"`
	End        geom.Point3 `json:"end"`
	Length     float64     `json:"length"`
	WidthStart float64     `json:"width_start"`
	WidthEnd   float64     `json:"width_end"`
}

// Mesh is a chain of segments.
type Mesh struct {
	Segments []Segment
}

// EndPoint returns the end of the last segment, or the origin.
func (m *Mesh) EndPoint() geom.Point3 {
	if len(m.Segments) == 0 {
		return geom.Origin
	}
	return m.Segments[len(m.Segments)-1].End
}

// Extend appends a segment of the given length along the heading rotated
// by orientation. The end point always advances forward by |length|; the
// segment keeps the signed length.
func (m *Mesh) Extend(length float64, orientation geom.Matrix4, widthStart, widthEnd float64) {
	start := m.EndPoint()
	dir := orientation.Vector(heading).Normalize()
	m.Segments = append(m.Segments, Segment{
		Start:      start,
		End:        start.Add(dir.Scale(math.Abs(length))),
		Length:     length,
		WidthStart: widthStart,
		WidthEnd:   widthEnd,
	})
}

// Length is the summed length of all segments.
func (m *Mesh) Length() float64 {
	var total float64
	for _, s := range m.Segments {
		total += s.Length
	}
	return total
}
