package export

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/galaxy/pkg/cloud"
	"github.com/matzehuels/galaxy/pkg/core/chaos"
)

type jsonOutput struct {
	RunID  string        `json:"run_id,omitempty"`
	Config *chaos.Config `json:"config,omitempty"`
	Start  *[3]float64   `json:"start,omitempty"`
	Stats  jsonStats     `json:"stats"`
	Points []Point       `json:"points"`
}

type jsonStats struct {
	Count     int         `json:"count"`
	Min       [3]float64  `json:"min"`
	Max       [3]float64  `json:"max"`
	Centroid  [3]float64  `json:"centroid"`
	Selectors map[int]int `json:"selectors"`
}

// Point is the JSON form of a single point, shared by the json export and
// the HTTP point stream.
type Point struct {
	Index    int        `json:"i"`
	Position [3]float64 `json:"p"`
	Color    [3]float64 `json:"cd"`
	Selector int        `json:"f"`
}

func encodeJSON(w io.Writer, c *cloud.Cloud, o *options) error {
	s := c.Stats()
	out := jsonOutput{
		RunID:  o.runID,
		Config: o.config,
		Stats: jsonStats{
			Count:     s.Count,
			Min:       s.Min.Array(),
			Max:       s.Max.Array(),
			Centroid:  s.Centroid.Array(),
			Selectors: s.Selectors,
		},
		Points: make([]Point, c.Len()),
	}
	if o.start != nil {
		a := o.start.Array()
		out.Start = &a
	}
	for i, p := range c.Points() {
		out.Points[i] = NewPoint(p)
	}
	return json.NewEncoder(w).Encode(out)
}

// NewPoint converts p to its JSON form.
func NewPoint(p chaos.Point) Point {
	return Point{
		Index:    p.Index,
		Position: p.Position.Array(),
		Color:    p.Color.Array(),
		Selector: p.Selector,
	}
}
