package inifile

import (
	"fmt"
	"strings"
)

// ScanMode controls how unquoted values are typed while parsing.
type ScanMode int

const (
	// ScanTyped turns true/on/yes and false/off/no/none into booleans.
	ScanTyped ScanMode = iota
	// ScanNormal turns the same tokens into the strings "1" and "".
	ScanNormal
	// ScanRaw keeps every value as text.
	ScanRaw
)

// String returns the mode name.
func (m ScanMode) String() string {
	switch m {
	case ScanTyped:
		return "typed"
	case ScanNormal:
		return "normal"
	case ScanRaw:
		return "raw"
	default:
		return fmt.Sprintf("ScanMode(%d)", int(m))
	}
}

// Set implements pflag.Value.
func (m *ScanMode) Set(s string) error {
	parsed, err := ParseScanMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *ScanMode) Type() string {
	return "scanner"
}

// Untyped reports whether the mode leaves booleans as strings.
func (m ScanMode) Untyped() bool {
	return m != ScanTyped
}

// ParseScanMode parses a mode name; the empty string selects ScanTyped.
func ParseScanMode(s string) (ScanMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "typed":
		return ScanTyped, nil
	case "normal":
		return ScanNormal, nil
	case "raw":
		return ScanRaw, nil
	default:
		return ScanTyped, fmt.Errorf("unknown scanner mode %q (want typed, normal or raw)", s)
	}
}
