package amsearch

import (
	"github.com/oarkflow/amsearch/lib"
)

var tokensPool = lib.NewPool[map[string]int](func() map[string]int { return make(map[string]int) })
