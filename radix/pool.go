package radix

import (
	"github.com/oarkflow/amsearch/lib"
)

var nodePool = lib.NewPool[*node](func() *node {
	return &node{
		children: make(map[rune]*node),
		infos:    make(map[int64]float64),
	}
})
