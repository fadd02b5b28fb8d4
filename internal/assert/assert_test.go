package assert

import "testing"

// True is a no-op in this package's default (non-schedcore_debug) test
// build, so the only thing worth asserting here is that it never panics
// regardless of cond — the debug build's panicking behavior is exercised
// by building with -tags schedcore_debug, which this suite does not do.
func TestTrue_NeverPanicsInReleaseBuild(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("True panicked in a release build: %v", r)
		}
	}()
	True(false, "this must not panic without the schedcore_debug tag")
}
