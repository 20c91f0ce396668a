package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/galaxy/pkg/cloud"
)

func encodePLY(w io.Writer, c *cloud.Cloud, o *options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment generated by galaxy")
	if o.runID != "" {
		fmt.Fprintf(bw, "comment run %s\n", o.runID)
	}
	if cfg := o.config; cfg != nil {
		fmt.Fprintf(bw, "comment seed_count=%d base_seed=%s point_count=%d rsq_add_var3=%s mode=%s\n",
			cfg.SeedCount, formatFloat(cfg.BaseSeed), cfg.PointCount, formatFloat(cfg.RsqAddVar3), cfg.Mode)
	}
	if o.start != nil {
		fmt.Fprintf(bw, "comment start=%s\n", o.start)
	}
	fmt.Fprintf(bw, "element vertex %d\n", c.Len())
	for _, prop := range []string{
		"double x", "double y", "double z",
		"float red", "float green", "float blue",
		"int f",
	} {
		fmt.Fprintf(bw, "property %s\n", prop)
	}
	fmt.Fprintln(bw, "end_header")

	line := make([]byte, 0, 160)
	for _, p := range c.Points() {
		line = line[:0]
		for _, v := range p.Position.Array() {
			line = strconv.AppendFloat(line, v, 'g', -1, 64)
			line = append(line, ' ')
		}
		for _, v := range p.Color.Array() {
			line = strconv.AppendFloat(line, v, 'g', -1, 32)
			line = append(line, ' ')
		}
		line = strconv.AppendInt(line, int64(p.Selector), 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
