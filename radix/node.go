package radix

import (
	"maps"
)

type node struct {
	subword  []rune
	children map[rune]*node
	infos    map[int64]float64
}

func newNode(subword []rune) *node {
	n := nodePool.Get()
	n.subword = append(n.subword[:0], subword...)
	return n
}

func releaseNode(n *node) {
	n.subword = n.subword[:0]
	clear(n.children)
	clear(n.infos)
	nodePool.Put(n)
}

func (n *node) addChild(child *node) {
	if len(child.subword) > 0 {
		n.children[child.subword[0]] = child
	}
}

func (n *node) removeChild(child *node) {
	if len(child.subword) > 0 {
		delete(n.children, child.subword[0])
	}
}

func (n *node) addRecordInfo(id int64, frequency float64) {
	n.infos[id] = frequency
}

func (n *node) removeRecordInfo(id int64) {
	delete(n.infos, id)
}

// collect copies the infos of n and every node below it into results.
func collect(n *node, results map[int64]float64) {
	stack := []*node{n}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		maps.Copy(results, curr.infos)
		for _, child := range curr.children {
			stack = append(stack, child)
		}
	}
}

// mergeNodes folds the only child b into a.
func mergeNodes(a *node, b *node) {
	a.subword = append(a.subword, b.subword...)
	a.infos, b.infos = b.infos, a.infos
	a.children, b.children = b.children, a.children
	releaseNode(b)
}
