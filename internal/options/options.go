// Package options implements generic functional options.
//
// A package declares its option type as an alias of Option over its settings struct:
//
//	type LoadOption = options.Option[*loadConfig]
//
//	func WithReadStrategy(s format.ReadStrategy) LoadOption {
//		return options.New(func(c *loadConfig) error { ... })
//	}
package options

// Option configures a value of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] func(T) error

func (f Func[T]) apply(target T) error {
	if f == nil {
		return nil
	}

	return f(target)
}

// New returns an option that may reject its input.
func New[T any](fn func(T) error) Func[T] {
	return Func[T](fn)
}

// NoError returns an option that always succeeds.
func NoError[T any](fn func(T)) Func[T] {
	return func(target T) error {
		fn(target)
		return nil
	}
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
