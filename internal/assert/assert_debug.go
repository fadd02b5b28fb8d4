//go:build schedcore_debug

package assert

func assertTrue(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}
