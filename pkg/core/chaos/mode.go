package chaos

import (
	errs "github.com/matzehuels/galaxy/pkg/errors"
)

// Mode selects how variations are applied after the selector draw.
type Mode string

const (
	// ModeLiteral composes var1, var2 and var3 every iteration and records
	// selector 3 on every point.
	ModeLiteral Mode = "literal"

	// ModeCorrected applies exactly one of identity, var1, var2 for selector
	// 0, 1, 2 and records the selector.
	ModeCorrected Mode = "corrected"

	// ModeOneBased applies var1, var2 or var3 for selector 0, 1, 2 and records
	// the selector plus one.
	ModeOneBased Mode = "one-based"
)

// DefaultMode is used when no mode is given.
const DefaultMode = ModeLiteral

// literalSelector is the attribute every point carries in ModeLiteral.
const literalSelector = 3

var literalChain = []Variation{Variation1, Variation2, Variation3}

// Modes lists the accepted modes in documentation order.
var Modes = []Mode{ModeLiteral, ModeCorrected, ModeOneBased}

// ParseMode converts s to a Mode. The empty string selects [DefaultMode].
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return DefaultMode, nil
	}
	m := Mode(s)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate reports whether m is a known mode. The zero value is valid and
// means [DefaultMode].
func (m Mode) Validate() error {
	switch m {
	case "", ModeLiteral, ModeCorrected, ModeOneBased:
		return nil
	}
	return errs.New(errs.ErrCodeConfiguration, "unknown mode %q (must be one of: literal, corrected, one-based)", string(m))
}

// plan returns the variations to apply, in order, and the selector to record
// for a drawn needle.
func (m Mode) plan(needle int) ([]Variation, int) {
	switch m {
	case ModeCorrected:
		return []Variation{Variation(needle)}, needle
	case ModeOneBased:
		return []Variation{Variation(needle + 1)}, needle + 1
	default:
		return literalChain, literalSelector
	}
}
