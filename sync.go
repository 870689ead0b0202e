//go:build !tinygo

package qliic

import (
	"time"

	sync "github.com/sasha-s/go-deadlock"
)

// Host builds detect lock-order inversions and long lock waits.  A wait
// longer than QLIIC_DEADLOCK_TIMEOUT (default 30s) is reported; 0 disables
// detection.
func init() {
	timeout, err := time.ParseDuration(GetEnv("QLIIC_DEADLOCK_TIMEOUT", "30s"))
	if err != nil {
		return
	}
	sync.Opts.DeadlockTimeout = timeout
	sync.Opts.Disable = timeout == 0
}

type mutex struct {
	sync.Mutex
}

type rwMutex struct {
	sync.RWMutex
}
