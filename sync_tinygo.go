//go:build tinygo

package qliic

import (
	"sync"
)

type mutex struct {
	sync.Mutex
}

type rwMutex struct {
	sync.RWMutex
}
