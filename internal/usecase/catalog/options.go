package catalog

// Option adjusts a single report or listing call.
type Option func(*options)

type options struct {
	locale string
	client string
}

// InLocale renders with the given locale instead of the repository's current one.
// Unsupported tags fall back to en-GB.
func InLocale(tag string) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// ForClient prefixes report file names with the client name.
func ForClient(name string) Option {
	return func(o *options) {
		o.client = name
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
