package storage

type SampleParams struct {
	Size int
}

// Store defines the interface for our key-value store
type Store[K comparable, V any] interface {
	Set(key K, value V) error
	Get(key K) (V, bool)
	Del(key K) error
	Len() uint32
	Name() string
	Sample(params SampleParams) (map[K]V, error)
	ForEach(func(K, V) bool)
	Close() error
}
