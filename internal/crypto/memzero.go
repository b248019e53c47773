package crypto

import (
	"crypto/subtle"
	"runtime"
)

// Wipe zeroes b. It is best-effort: copies made by the runtime are not reached.
//
//go:noinline
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	subtle.XORBytes(b, b, b)
	runtime.KeepAlive(&b)
}
