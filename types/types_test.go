package types

import (
	"math"
	"testing"
)

func TestFloatEqual(t *testing.T) {
	type spec struct {
		a, b float64
		exp  bool
	}
	specs := []spec{
		{1.0, 1.0, true},
		{0.5, 0.5 + 1e-7, true},
		{0.5, 0.5 + 1e-2, false},
		{1000000.0, 1000000.1, true},
		{0, 1e-7, false},
		{0, 0, true},
		{-0.5, 0.5, false},
		{math.Inf(1), math.Inf(1), true},
		{math.Inf(1), math.Inf(-1), false},
	}

	for idx, s := range specs {
		if got := FloatEqual(s.a, s.b); got != s.exp {
			t.Fatalf("[spec %d] expected FloatEqual(%v, %v) to be %t; got %t", idx, s.a, s.b, s.exp, got)
		}
	}
}

func TestBBox(t *testing.T) {
	bbox := EmptyBBox()
	if !bbox.IsEmpty() {
		t.Fatal("expected new bbox to be empty")
	}

	bbox = bbox.Expand(XYZ(1, -1, 0)).Expand(XYZ(-1, 2, 3))
	if bbox.IsEmpty() {
		t.Fatal("expected expanded bbox not to be empty")
	}

	expMin, expMax := XYZ(-1, -1, 0), XYZ(1, 2, 3)
	if !ApproxEqual(bbox[0], expMin, 1e-6) {
		t.Fatalf("expected bbox min to be %v; got %v", expMin, bbox[0])
	}
	if !ApproxEqual(bbox[1], expMax, 1e-6) {
		t.Fatalf("expected bbox max to be %v; got %v", expMax, bbox[1])
	}

	expCenter := XYZ(0, 0.5, 1.5)
	if !ApproxEqual(bbox.Center(), expCenter, 1e-6) {
		t.Fatalf("expected bbox center to be %v; got %v", expCenter, bbox.Center())
	}
}

func TestVecConversions(t *testing.T) {
	v := XYZ(1, 2, 3).Vec4(1)
	if v[3] != 1 {
		t.Fatalf("expected w component to be 1; got %f", v[3])
	}
	if v.Vec3() != XYZ(1, 2, 3) {
		t.Fatalf("expected Vec3 to drop the w component; got %v", v.Vec3())
	}
}
