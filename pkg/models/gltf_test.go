package models

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/softrender/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.LeftHanded {
		t.Error("LeftHanded should default to true")
	}
	if loader.DefaultColor != White {
		t.Errorf("DefaultColor = %#x, want white", loader.DefaultColor)
	}
}

// triangleDoc builds a single-triangle document: three float positions,
// three UVs and ushort indices packed into one buffer.
func triangleDoc(indices []uint16, material *int) *gltf.Document {
	var buf []byte
	putF := func(v float32) {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, p := range [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}} {
		putF(p[0])
		putF(p[1])
		putF(p[2])
	}
	for _, uv := range [][2]float32{{0, 0}, {1, 0}, {0, 0.25}} {
		putF(uv[0])
		putF(uv[1])
	}
	for _, i := range indices {
		buf = binary.LittleEndian.AppendUint16(buf, i)
	}

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(buf), Data: buf}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 24},
			{Buffer: 0, ByteOffset: 60, ByteLength: 2 * len(indices)},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec2},
			{BufferView: gltf.Index(2), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
		},
		Materials: []*gltf.Material{
			{Name: "red", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}}},
		},
		Meshes: []*gltf.Mesh{{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0, gltf.TEXCOORD_0: 1},
				Indices:    gltf.Index(2),
				Material:   material,
			}},
		}},
	}
}

func TestFromDocument(t *testing.T) {
	mesh, err := NewGLTFLoader().FromDocument(triangleDoc([]uint16{0, 1, 2}, gltf.Index(0)), "tri")
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if mesh.VertexCount() != 3 || mesh.FaceCount() != 1 {
		t.Fatalf("got %d vertices, %d faces", mesh.VertexCount(), mesh.FaceCount())
	}

	// Z is mirrored into the left-handed frame.
	if got := mesh.Vertex(0); got != math3d.V3(0, 0, -1) {
		t.Errorf("vertex 0 = %v", got)
	}

	f := mesh.Face(0)
	if f.V != [3]int{0, 2, 1} {
		t.Errorf("winding = %v, want [0 2 1]", f.V)
	}
	// V flipped to bottom-left origin; corner 1 is source vertex 2.
	if f.UV[1] != math3d.V2(0, 0.75) {
		t.Errorf("uv = %v, want (0, 0.75)", f.UV[1])
	}
	if f.Color != 0xFFFF0000 {
		t.Errorf("color = %#x, want red", f.Color)
	}
}

func TestFromDocumentDefaultColor(t *testing.T) {
	loader := NewGLTFLoader()
	loader.DefaultColor = 0xFF123456
	mesh, err := loader.FromDocument(triangleDoc([]uint16{0, 1, 2}, nil), "tri")
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if got := mesh.Face(0).Color; got != 0xFF123456 {
		t.Errorf("color = %#x", got)
	}
}

func TestFromDocumentBadIndex(t *testing.T) {
	_, err := NewGLTFLoader().FromDocument(triangleDoc([]uint16{0, 1, 7}, nil), "tri")
	if !errors.Is(err, ErrFaceIndex) {
		t.Errorf("err = %v, want ErrFaceIndex", err)
	}
}

func TestFromDocumentTruncatedBuffer(t *testing.T) {
	doc := triangleDoc([]uint16{0, 1, 2}, nil)
	doc.Accessors[0].Count = 100
	if _, err := NewGLTFLoader().FromDocument(doc, "tri"); err == nil {
		t.Error("expected error for accessor past buffer end")
	}
}

func TestPackColor(t *testing.T) {
	tests := []struct {
		in   [4]float64
		want uint32
	}{
		{[4]float64{1, 1, 1, 1}, 0xFFFFFFFF},
		{[4]float64{1, 0, 0, 1}, 0xFFFF0000},
		{[4]float64{0, 0, 1, 0.5}, 0x800000FF},
		{[4]float64{2, -1, 0, 1}, 0xFFFF0000},
	}
	for _, tt := range tests {
		if got := PackColor(tt.in); got != tt.want {
			t.Errorf("PackColor(%v) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}
