package analysis

// Result carries an analysis value. When the external service failed or
// answered outside the expected shape, Value holds the documented fallback
// and Fallback records why.
type Result[T any] struct {
	Value    T
	Fallback error
}

func (r Result[T]) Degraded() bool {
	return r.Fallback != nil
}

func success[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func degraded[T any](v T, reason error) Result[T] {
	return Result[T]{Value: v, Fallback: reason}
}
