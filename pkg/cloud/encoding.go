package cloud

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
)

// wireCloud is the cache representation. Vectors are packed as arrays to keep
// entries small; float64 values survive the round trip exactly.
type wireCloud struct {
	Version int         `json:"v"`
	Points  []wirePoint `json:"points"`
}

type wirePoint struct {
	P [3]float64 `json:"p"`
	C [3]float64 `json:"c"`
	S int        `json:"s"`
}

const wireVersion = 1

// Marshal encodes c for storage.
func Marshal(c *Cloud) ([]byte, error) {
	out := wireCloud{
		Version: wireVersion,
		Points:  make([]wirePoint, len(c.points)),
	}
	for i, p := range c.points {
		out.Points[i] = wirePoint{P: p.Position.Array(), C: p.Color.Array(), S: p.Selector}
	}
	return json.Marshal(out)
}

// Unmarshal decodes data produced by [Marshal].
func Unmarshal(data []byte) (*Cloud, error) {
	var in wireCloud
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode cloud: %w", err)
	}
	if in.Version != wireVersion {
		return nil, fmt.Errorf("decode cloud: unsupported version %d", in.Version)
	}
	c := New(len(in.Points))
	for i, wp := range in.Points {
		p := chaos.Point{
			Index:    i,
			Position: vec.FromArray(wp.P),
			Color:    vec.FromArray(wp.C),
			Selector: wp.S,
		}
		if err := c.Emit(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}
