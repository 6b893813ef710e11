package stbjson

import "sync/atomic"

// lastErr holds the most recent parse error observed by Parse and its
// variants, as a best-effort diagnostic for callers migrating from the
// source library's thread-local stb_json_geterrorptr/global_error
// state. Unlike true thread-local storage, this is a single process-wide
// slot: in a program calling Parse concurrently from multiple
// goroutines, LastError may report a different goroutine's error. Code
// that needs a reliable error should use the error return value of
// Parse directly instead.
var lastErr atomic.Value

func recordLastError(err error) {
	if err == nil {
		return
	}
	lastErr.Store(err)
}

// LastError returns the most recent parse error recorded by this
// process, or nil if none has occurred yet. See the lastErr field
// comment for why this is weaker than the source library's
// thread-local error pointer.
func LastError() error {
	v := lastErr.Load()
	if v == nil {
		return nil
	}
	return v.(error)
}
