// Package options defines the functional option machinery shared by the
// configurable constructors in this module.
package options

// Option is implemented by any configuration option applicable to a target of
// type T. Options are named so callers and tests can identify them.
type Option[T any] interface {
	// Apply applies the option to the target.
	Apply(target *T)

	// OptionName returns the name of the option.
	OptionName() string
}

// ApplyOptions applies each option to target in order.
func ApplyOptions[T any](target *T, opts ...Option[T]) {
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(target)
		}
	}
}
