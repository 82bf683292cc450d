package sig

import "github.com/AnatoleLucet/signals/internal"

// Batch batches multiple signal writes into a single update cycle,
// instead of triggering updates after each write.
func Batch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// BatchValue is Batch for functions returning a value.
func BatchValue[T any](fn func() T) T {
	var result T
	internal.GetRuntime().NewBatch(func() { result = fn() })
	return result
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// Flush runs pending effects now. Only needed with a scheduler that defers flushes.
func Flush() {
	internal.GetRuntime().Flush()
}

// OnSettled registers a function to be called once, after the next flush
// ran every pending effect, including the ones scheduled by other effects.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}
