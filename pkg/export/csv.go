package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/matzehuels/galaxy/pkg/cloud"
)

var csvHeader = []string{"index", "x", "y", "z", "r", "g", "b", "selector"}

func encodeCSV(w io.Writer, c *cloud.Cloud) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	record := make([]string, len(csvHeader))
	for _, p := range c.Points() {
		record[0] = strconv.Itoa(p.Index)
		for i, v := range p.Position.Array() {
			record[1+i] = formatFloat(v)
		}
		for i, v := range p.Color.Array() {
			record[4+i] = formatFloat(v)
		}
		record[7] = strconv.Itoa(p.Selector)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
