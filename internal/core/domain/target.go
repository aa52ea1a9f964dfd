package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// TargetKind tags a declared target with what the build produces there.
type TargetKind int

const (
	// KindOther is any artifact that needs no post-processing.
	KindOther TargetKind = iota
	// KindDynamicLibrary is a shared library that gets relocated after the build.
	KindDynamicLibrary
)

// String returns the buildfile spelling of the kind.
func (k TargetKind) String() string {
	if k == KindDynamicLibrary {
		return "dynlib"
	}
	return "other"
}

// ParseTargetKind parses the buildfile spelling of a target kind.
// An empty string means KindOther.
func ParseTargetKind(s string) (TargetKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "other":
		return KindOther, nil
	case "dynlib", "dynamic-library", "shared":
		return KindDynamicLibrary, nil
	default:
		return KindOther, zerr.With(ErrInvalidTargetKind, "kind", s)
	}
}

// Target is a file the wrapped build produces.
type Target struct {
	Path string
	Kind TargetKind
}

// IsDynamicLibrary reports whether the target is relocated after the build.
func (t Target) IsDynamicLibrary() bool {
	return t.Kind == KindDynamicLibrary
}
