package reactive

import "fmt"

// guardUser runs fn and converts a panic into an error instead of letting it
// propagate out of the producer goroutine. Every operator that calls
// user-supplied code (a predicate, a mapping, a fold step) routes the call
// through this so a panicking callback becomes a normal onError delivery
// downstream rather than a crash.
func guardUser[R any](fn func() R) (result R, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = fmt.Errorf("reactive: user code panicked: %v", r)
		}
	}()
	result = fn()
	return
}
