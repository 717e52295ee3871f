package storage

import (
	"errors"
	"fmt"

	"github.com/oarkflow/flydb"
	"github.com/oarkflow/log"
	"github.com/oarkflow/msgpack"
	"github.com/oarkflow/xsync"
)

// FlyDB keeps msgpack encoded documents in a flydb file under basePath.
type FlyDB[K comparable, V any] struct {
	client     *flydb.DB[[]byte, []byte]
	sampleSize int
	docLen     *xsync.Counter
	parseKey   func(string) (K, error)
}

// NewFlyDB opens or creates the database at basePath. parseKey turns a
// stored key back into K for ForEach and Sample.
func NewFlyDB[K comparable, V any](basePath string, sampleSize int, parseKey func(string) (K, error)) (Store[K, V], error) {
	client, err := flydb.Open[[]byte, []byte](basePath, nil)
	if err != nil {
		return nil, err
	}
	s := &FlyDB[K, V]{
		client:     client,
		sampleSize: sampleSize,
		docLen:     xsync.NewCounter(),
		parseKey:   parseKey,
	}
	it := client.Items()
	for {
		_, _, err := it.Next()
		if errors.Is(err, flydb.ErrIterationDone) {
			break
		}
		if err != nil {
			client.Close()
			return nil, err
		}
		s.docLen.Inc()
	}
	return s, nil
}

func (s *FlyDB[K, V]) Name() string {
	return "flydb"
}

func (s *FlyDB[K, V]) key(key K) []byte {
	return []byte(fmt.Sprintf("%v", key))
}

func (s *FlyDB[K, V]) exists(key []byte) bool {
	_, err := s.client.Get(key)
	return err == nil
}

func (s *FlyDB[K, V]) Set(key K, value V) error {
	data, err := msgpack.Marshal(value)
	if err != nil {
		return err
	}
	k := s.key(key)
	existed := s.exists(k)
	if err := s.client.Put(k, data); err != nil {
		return err
	}
	if !existed {
		s.docLen.Inc()
	}
	return nil
}

func (s *FlyDB[K, V]) Get(key K) (V, bool) {
	data, err := s.client.Get(s.key(key))
	if err != nil {
		return *new(V), false
	}
	return s.decode(data)
}

func (s *FlyDB[K, V]) decode(data []byte) (V, bool) {
	var value V
	if err := msgpack.Unmarshal(data, &value); err != nil {
		log.Error().Err(err).Msg("Unable to decode document")
		return *new(V), false
	}
	return value, true
}

func (s *FlyDB[K, V]) Del(key K) error {
	k := s.key(key)
	if !s.exists(k) {
		return nil
	}
	if err := s.client.Delete(k); err != nil {
		return err
	}
	s.docLen.Dec()
	return nil
}

func (s *FlyDB[K, V]) Len() uint32 {
	return uint32(s.docLen.Value())
}

func (s *FlyDB[K, V]) ForEach(fn func(K, V) bool) {
	it := s.client.Items()
	for {
		rawKey, data, err := it.Next()
		if errors.Is(err, flydb.ErrIterationDone) {
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("Unable to iterate store")
			return
		}
		key, err := s.parseKey(string(rawKey))
		if err != nil {
			continue
		}
		value, ok := s.decode(data)
		if !ok {
			continue
		}
		if !fn(key, value) {
			return
		}
	}
}

func (s *FlyDB[K, V]) Sample(params SampleParams) (map[K]V, error) {
	return sample[K, V](s, s.sampleSize, params), nil
}

func (s *FlyDB[K, V]) Close() error {
	return s.client.Close()
}
