package vec

import (
	"math"
	"testing"
)

func TestArithmetic(t *testing.T) {
	a := New(1, 2, 3)
	b := New(4, -5, 6)

	if got, want := a.Add(b), New(5, -3, 9); got != want {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), New(-3, 7, -3); got != want {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	if got, want := a.Scale(2), New(2, 4, 6); got != want {
		t.Errorf("Scale() = %v, want %v", got, want)
	}
	if got := a.Length2(); got != 14 {
		t.Errorf("Length2() = %v, want 14", got)
	}
	if got := New(3, 4, 0).Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestMinMax(t *testing.T) {
	a := New(1, 5, -2)
	b := New(3, -1, -2)
	if got, want := a.Min(b), New(1, -1, -2); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), New(3, 5, -2); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestIsFinite(t *testing.T) {
	if !New(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if New(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if New(0, math.Inf(-1), 0).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Vec3
		wantErr bool
	}{
		{"0,0,0", Zero, false},
		{"1.5, -2, 3e2", New(1.5, -2, 300), false},
		{"1,2", Vec3{}, true},
		{"1,x,3", Vec3{}, true},
		{"", Vec3{}, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	v := New(0.1, -7.634, 1e-9)
	got, err := Parse(v.String())
	if err != nil {
		t.Fatalf("Parse(String()) error: %v", err)
	}
	if got != v {
		t.Errorf("Parse(String()) = %v, want %v", got, v)
	}
}
