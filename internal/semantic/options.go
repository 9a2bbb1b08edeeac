package semantic

// Options configures one Collect/Resolve run. It follows the functional-
// options shape the teacher uses for its own interpreter configuration
// (interp.Option) rather than a public struct with exported fields, so new
// knobs can be added without breaking callers.
type Options struct {
	fileURI          string
	stdlibClassNames map[string]bool
	detailLevel      DetailLevel
}

// Option configures an Options value.
type Option func(*Options)

// NewOptions applies opts over the defaults (empty fileURI, no known
// standard-library classes, DetailFull).
func NewOptions(opts ...Option) Options {
	o := Options{
		stdlibClassNames: map[string]bool{},
		detailLevel:      DetailFull,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFileURI sets the file identifier embedded in every symbol id and
// reference (spec.md §6.3).
func WithFileURI(uri string) Option {
	return func(o *Options) { o.fileURI = uri }
}

// WithStdlibClassNames supplies the set of built-in Apex class names the
// chain analyzer and type extractor treat as IsBuiltIn without attempting
// resolution (the standard-library class-name oracle).
func WithStdlibClassNames(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.stdlibClassNames[normalizeClassName(n)] = true
		}
	}
}

// WithDetailLevel sets the detail level the table records and reports via
// GetDetailLevel; the collector records the same symbols and references at
// every level.
func WithDetailLevel(level DetailLevel) Option {
	return func(o *Options) { o.detailLevel = level }
}

func (o Options) isStdlibClass(name string) bool {
	return o.stdlibClassNames[normalizeClassName(name)]
}

func normalizeClassName(name string) string {
	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
