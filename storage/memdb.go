package storage

import (
	"unsafe"

	"github.com/oarkflow/xsync"
	"golang.org/x/exp/constraints"
)

type Hashable interface {
	constraints.Integer | constraints.Float | constraints.Complex | ~string | uintptr | unsafe.Pointer
}

type MemDB[K Hashable, V any] struct {
	client     xsync.IMap[K, V]
	sampleSize int
}

func NewMemDB[K Hashable, V any](sampleSize int) (Store[K, V], error) {
	return &MemDB[K, V]{client: xsync.NewMap[K, V](), sampleSize: sampleSize}, nil
}

func (m *MemDB[K, V]) Set(key K, value V) error {
	m.client.Set(key, value)
	return nil
}

func (m *MemDB[K, V]) Name() string {
	return "memdb"
}

func (m *MemDB[K, V]) Get(key K) (V, bool) {
	return m.client.Get(key)
}

func (m *MemDB[K, V]) Del(key K) error {
	m.client.Del(key)
	return nil
}

func (m *MemDB[K, V]) Len() uint32 {
	return uint32(m.client.Size())
}

func (m *MemDB[K, V]) ForEach(fn func(K, V) bool) {
	m.client.ForEach(fn)
}

func (m *MemDB[K, V]) Sample(params SampleParams) (map[K]V, error) {
	return sample[K, V](m, m.sampleSize, params), nil
}

func (m *MemDB[K, V]) Close() error {
	return nil
}

func sample[K comparable, V any](store Store[K, V], defaultSize int, params SampleParams) map[K]V {
	sz := defaultSize
	if params.Size != 0 {
		sz = params.Size
	}
	value := make(map[K]V, sz)
	store.ForEach(func(key K, val V) bool {
		if len(value) >= sz {
			return false
		}
		value[key] = val
		return true
	})
	return value
}
