package cloud

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
)

func point(i int, x, y, z float64, sel int) chaos.Point {
	return chaos.Point{Index: i, Position: vec.New(x, y, z), Color: vec.New(0.1, 0.2, 0.3), Selector: sel}
}

func TestEmitAndStats(t *testing.T) {
	c := New(3)
	for _, p := range []chaos.Point{
		point(0, 1, 2, 3, 0),
		point(1, -1, 4, 0, 2),
		point(2, 3, -6, 3, 2),
	} {
		if err := c.Emit(p); err != nil {
			t.Fatalf("Emit(%d) error: %v", p.Index, err)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	s := c.Stats()
	if want := vec.New(-1, -6, 0); s.Min != want {
		t.Errorf("Min = %v, want %v", s.Min, want)
	}
	if want := vec.New(3, 4, 3); s.Max != want {
		t.Errorf("Max = %v, want %v", s.Max, want)
	}
	if want := vec.New(1, 0, 2); s.Centroid != want {
		t.Errorf("Centroid = %v, want %v", s.Centroid, want)
	}
	if want := map[int]int{0: 1, 2: 2}; !reflect.DeepEqual(s.Selectors, want) {
		t.Errorf("Selectors = %v, want %v", s.Selectors, want)
	}
}

func TestEmitOutOfOrder(t *testing.T) {
	c := New(0)
	err := c.Emit(point(1, 0, 0, 0, 0))
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Emit() error = %v, want %s", err, errs.ErrCodeInvalidInput)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after rejected point", c.Len())
	}
}

func TestEmptyStats(t *testing.T) {
	s := New(0).Stats()
	if s.Count != 0 || s.Centroid != vec.Zero || s.Min != vec.Zero {
		t.Errorf("empty Stats() = %+v", s)
	}
}

func TestCloudAsSink(t *testing.T) {
	cfg := chaos.Config{SeedCount: 3, BaseSeed: 0.5, PointCount: 250, RsqAddVar3: 0.1}
	it, err := chaos.NewIterator(cfg, vec.Zero)
	if err != nil {
		t.Fatalf("NewIterator() error: %v", err)
	}
	c := New(cfg.PointCount)
	if err := it.Run(context.Background(), c); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if c.Len() != 250 {
		t.Errorf("Len() = %d, want 250", c.Len())
	}
	if c.Stats().Selectors[3] != 250 {
		t.Errorf("literal run selectors = %v, want all 3", c.Stats().Selectors)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	points, err := chaos.Generate(context.Background(), chaos.Config{
		SeedCount: 3, BaseSeed: 42, PointCount: 100, RsqAddVar3: 0.05, Mode: chaos.ModeOneBased,
	}, vec.New(0.1, 0.1, 0.1))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	c := New(len(points))
	for _, p := range points {
		if err := c.Emit(p); err != nil {
			t.Fatalf("Emit() error: %v", err)
		}
	}

	data, err := Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(got.Points(), c.Points()) {
		t.Error("round trip changed points")
	}
	if !reflect.DeepEqual(got.Stats(), c.Stats()) {
		t.Errorf("round trip changed stats: %+v vs %+v", got.Stats(), c.Stats())
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "nope"},
		{"wrong version", `{"v":2,"points":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal([]byte(tt.data)); err == nil {
				t.Error("Unmarshal() should fail")
			}
		})
	}
}
