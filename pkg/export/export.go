package export

import (
	"bytes"
	"io"

	"github.com/matzehuels/galaxy/pkg/cloud"
	"github.com/matzehuels/galaxy/pkg/core/chaos"
	"github.com/matzehuels/galaxy/pkg/core/vec"
	errs "github.com/matzehuels/galaxy/pkg/errors"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatPLY  = "ply"
	FormatCSV  = "csv"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatPLY:  true,
	FormatCSV:  true,
}

var contentTypes = map[string]string{
	FormatJSON: "application/json",
	FormatPLY:  "application/octet-stream",
	FormatCSV:  "text/csv; charset=utf-8",
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, ply, csv)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ContentType returns the HTTP content type for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Option configures an export.
type Option func(*options)

type options struct {
	runID  string
	config *chaos.Config
	start  *vec.Vec3
}

// WithConfig records the run configuration in the output header.
func WithConfig(cfg chaos.Config) Option { return func(o *options) { o.config = &cfg } }

// WithStart records the start position in the output header.
func WithStart(v vec.Vec3) Option { return func(o *options) { o.start = &v } }

// WithRunID records the run identifier in the output header.
func WithRunID(id string) Option { return func(o *options) { o.runID = id } }

// Encode writes c to w in format.
func Encode(w io.Writer, c *cloud.Cloud, format string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	switch format {
	case FormatJSON:
		return encodeJSON(w, c, &o)
	case FormatPLY:
		return encodePLY(w, c, &o)
	case FormatCSV:
		return encodeCSV(w, c)
	default:
		return ValidateFormat(format)
	}
}

// Render encodes c into memory.
func Render(c *cloud.Cloud, format string, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
