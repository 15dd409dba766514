package structmap

import (
	"log/slog"

	"github.com/viant/structmap/conv"
	"github.com/viant/tagly/format/text"
)

type options struct {
	logger     *slog.Logger
	sourceCase text.CaseFormat
	enums      *conv.Registry
	noCache    bool
}

//Option represents mapper option
type Option func(o *options)

//Options represents mapper options
type Options []Option

//Apply applies options
func (o Options) Apply(opts *options) {
	for _, opt := range o {
		opt(opts)
	}
}

func newOptions(opts []Option) *options {
	result := &options{enums: conv.DefaultRegistry}
	Options(opts).Apply(result)
	if result.logger == nil {
		result.logger = slog.New(slog.DiscardHandler)
	}
	return result
}

//WithLogger logs skipped pairs and ignored overrides at debug level
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

//WithSourceCase converts source member names from caseFormat to UpperCamel before matching
func WithSourceCase(caseFormat text.CaseFormat) Option {
	return func(o *options) {
		o.sourceCase = caseFormat
	}
}

//WithEnums sets enum registry
func WithEnums(registry *conv.Registry) Option {
	return func(o *options) {
		o.enums = registry
	}
}

//WithoutCache discovers member pairs on every call
func WithoutCache() Option {
	return func(o *options) {
		o.noCache = true
	}
}
