package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{3, 4, 5}
	got := a.Add(b)
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{-1, 8, -0.5}
	b := Vec3{1, 8, -0.5}
	if got := a.Distance(b); got != 2 {
		t.Errorf("Vec3.Distance() = %v, want 2", got)
	}
}

func TestVec3XZ(t *testing.T) {
	got := Vec3{1, 2, 3}.XZ()
	want := Vec2{1, 3}
	if got != want {
		t.Errorf("Vec3.XZ() = %v, want %v", got, want)
	}
}

func TestVec3ApproxEqual(t *testing.T) {
	a := Vec3{1, 1, 1}
	if !a.ApproxEqual(Vec3{1.0005, 0.9995, 1}, 0.001) {
		t.Error("expected vectors within eps to be equal")
	}
	if a.ApproxEqual(Vec3{1.1, 1, 1}, 0.001) {
		t.Error("expected vectors outside eps to differ")
	}
}
