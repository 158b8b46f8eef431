package openpen

import "github.com/rs/zerolog"

// Options holds options shared by the load and save operations.
type Options struct {
	Config *Config
	Logger *zerolog.Logger
}

// Option is a function that configures Options.
type Option func(*Options)

// WithConfig sets a custom Config.
func WithConfig(config *Config) Option {
	return func(opts *Options) {
		opts.Config = config
	}
}

// WithLogger routes log output of a single call to logger instead of the package Logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = &logger
	}
}

// defaultOptions returns the default options.
func defaultOptions() *Options {
	return &Options{
		Config: DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	return options
}

func (o *Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &Logger
}
