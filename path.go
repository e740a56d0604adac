package structdiff

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultRootIndicator marks the root of every rendered path
	DefaultRootIndicator = "$"
	// DefaultPathSeparator joins rendered path segments
	DefaultPathSeparator = "."
)

var defaultPaths = NewPathFactory(DefaultRootIndicator, DefaultPathSeparator)

// PathFactory starts paths and renders their segments. A factory is shared
// by every path that descends from one of its roots
type PathFactory struct {
	root      string
	separator string
}

// NewPathFactory creates a factory rendering paths as
// root + separator + segments joined by separator
func NewPathFactory(root, separator string) *PathFactory {
	return &PathFactory{root: root, separator: separator}
}

// RootIndicator returns the marker rendered for the root path
func (f *PathFactory) RootIndicator() string { return f.root }

// Separator returns the string rendered between segments
func (f *PathFactory) Separator() string { return f.separator }

// Begin returns an empty path at the root
func (f *PathFactory) Begin() Path {
	return Path{current: f.root, factory: f}
}

// Join renders segments. No segments renders the root indicator alone, an
// empty root indicator renders the joined segments without a leading
// separator
func (f *PathFactory) Join(segments []string) string {
	if len(segments) == 0 {
		return f.root
	}
	joined := strings.Join(segments, f.separator)
	if f.root == "" {
		return joined
	}
	return f.root + f.separator + joined
}

// Path is an immutable location within a compared value. Paths are passed by
// value, Append returns a new path that shares no mutable state with its
// parent. The zero Path is the root of the default factory
type Path struct {
	segments []string
	current  string
	factory  *PathFactory
}

// Append returns a path one segment deeper
func (p Path) Append(segment string) Path {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return Path{
		segments: append(segments, segment),
		current:  segment,
		factory:  p.factory,
	}
}

// AppendIndex appends a sequence index as a segment
func (p Path) AppendIndex(i int) Path {
	return p.Append(strconv.Itoa(i))
}

// AppendKey appends a map key as a segment
func (p Path) AppendKey(key any) Path {
	return p.Append(formatKey(key))
}

// Segments returns a copy of the path's segments, root first
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// Current returns the last appended segment, or the root indicator for a
// root path
func (p Path) Current() string {
	if len(p.segments) == 0 {
		return p.paths().root
	}
	return p.current
}

// Len returns the number of segments below the root
func (p Path) Len() int { return len(p.segments) }

// IsRoot reports whether the path has no segments
func (p Path) IsRoot() bool { return len(p.segments) == 0 }

// Equal reports whether two paths hold the same segments
func (p Path) Equal(other Path) bool {
	return slices.Equal(p.segments, other.segments)
}

// String renders the path with its factory
func (p Path) String() string {
	return p.paths().Join(p.segments)
}

func (p Path) paths() *PathFactory {
	if p.factory == nil {
		return defaultPaths
	}
	return p.factory
}

func formatKey(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	return fmt.Sprint(key)
}
