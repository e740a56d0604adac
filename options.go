package structdiff

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Option adjusts the settings an Engine is built from. Zero or more Options
// can be passed to New
type Option func(s *settings)

type settings struct {
	Config

	comparators       []comparatorEntry
	suppliers         []supplierEntry
	defaultComparator Comparator
	defaultSupplier   DefaultSupplier
	logger            *logrus.Logger

	errs []error
}

func newSettings() *settings {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &settings{
		Config:            DefaultConfig(),
		defaultComparator: ReflectiveComparator(),
		defaultSupplier:   PrimitiveDefaults(),
		logger:            logger,
	}
}

func (s *settings) fail(format string, args ...any) {
	s.errs = append(s.errs, fmt.Errorf("%w: "+format, append([]any{ErrMisconfigured}, args...)...))
}

func (s *settings) validate() error {
	if len(s.errs) > 0 {
		return s.errs[0]
	}
	return s.Config.Validate()
}

// WithoutDefaults leaves the built-in comparators out, only registered
// comparators and the default comparator are used
func WithoutDefaults() Option {
	return func(s *settings) {
		s.RegisterDefaults = false
	}
}

// WithRootIndicator sets the text that starts every rendered path. An empty
// indicator renders paths from their first segment
func WithRootIndicator(root string) Option {
	return func(s *settings) {
		s.RootIndicator = root
	}
}

// WithPathSeparator sets the text placed between path segments
func WithPathSeparator(sep string) Option {
	return func(s *settings) {
		s.PathSeparator = sep
	}
}

// WithDefaultComparator replaces the comparator used for types no registered
// comparator matches
func WithDefaultComparator(c Comparator) Option {
	return func(s *settings) {
		if c == nil {
			s.fail("nil default comparator")
			return
		}
		s.defaultComparator = c
	}
}

// WithDefaultSupplier replaces the supplier used for types no registered
// supplier matches
func WithDefaultSupplier(d DefaultSupplier) Option {
	return func(s *settings) {
		if d == nil {
			s.fail("nil default supplier")
			return
		}
		s.defaultSupplier = d
	}
}

// WithComparator registers c for every type m accepts. Comparators are
// consulted in registration order, ahead of the built-in ones
func WithComparator(m Matcher, c Comparator) Option {
	return func(s *settings) {
		switch {
		case m == nil:
			s.fail("nil matcher for comparator %T", c)
		case c == nil:
			s.fail("nil comparator")
		default:
			s.comparators = append(s.comparators, comparatorEntry{match: m, comparator: c})
		}
	}
}

// WithSupplier registers d as the source of default values for every type m
// accepts
func WithSupplier(m Matcher, d DefaultSupplier) Option {
	return func(s *settings) {
		switch {
		case m == nil:
			s.fail("nil matcher for supplier")
		case d == nil:
			s.fail("nil supplier")
		default:
			s.suppliers = append(s.suppliers, supplierEntry{match: m, supplier: d})
		}
	}
}

// WithElementSegments makes changes nested in collection elements and map
// entries carry the element index or entry key as a path segment
func WithElementSegments() Option {
	return func(s *settings) {
		s.ElementSegments = true
	}
}

// WithExportedFieldsOnly restricts struct comparison to exported fields
func WithExportedFieldsOnly() Option {
	return func(s *settings) {
		s.ExportedFieldsOnly = true
	}
}

// WithTagName sets the struct tag key used to rename and skip fields
func WithTagName(name string) Option {
	return func(s *settings) {
		s.TagName = name
	}
}

// WithLogger sends engine logs to logger. By default nothing is logged
func WithLogger(logger *logrus.Logger) Option {
	return func(s *settings) {
		if logger == nil {
			s.fail("nil logger")
			return
		}
		s.logger = logger
	}
}

// WithConfig replaces all plain settings at once, typically with the result
// of DecodeConfig
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.Config = cfg
	}
}
