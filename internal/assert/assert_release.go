//go:build !schedcore_debug

package assert

func assertTrue(bool, string) {}
