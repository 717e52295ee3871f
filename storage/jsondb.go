package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oarkflow/json"
	"github.com/oarkflow/log"
	"github.com/oarkflow/xsync"
)

const jsonExt = ".json"

// JsonDB keeps one JSON file per document under basePath.
type JsonDB[K comparable, V any] struct {
	basePath   string
	sampleSize int
	docLen     *xsync.Counter
	parseKey   func(string) (K, error)
}

// NewJsonDB opens basePath, creating it when missing. parseKey turns a file
// name back into a key for ForEach and Sample.
func NewJsonDB[K comparable, V any](basePath string, sampleSize int, parseKey func(string) (K, error)) (Store[K, V], error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}
	s := &JsonDB[K, V]{
		basePath:   basePath,
		sampleSize: sampleSize,
		docLen:     xsync.NewCounter(),
		parseKey:   parseKey,
	}
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), jsonExt) {
			s.docLen.Inc()
		}
	}
	return s, nil
}

func (s *JsonDB[K, V]) Name() string {
	return "json"
}

func (s *JsonDB[K, V]) fileName(key K) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%v%s", key, jsonExt))
}

func (s *JsonDB[K, V]) Set(key K, value V) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	fileName := s.fileName(key)
	_, statErr := os.Stat(fileName)
	if err := os.WriteFile(fileName, data, 0644); err != nil {
		return err
	}
	if errors.Is(statErr, os.ErrNotExist) {
		s.docLen.Inc()
	}
	return nil
}

func (s *JsonDB[K, V]) Get(key K) (V, bool) {
	var value V
	data, err := os.ReadFile(s.fileName(key))
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		log.Error().Err(err).Str("key", fmt.Sprint(key)).Msg("Unable to decode document")
		return value, false
	}
	return value, true
}

func (s *JsonDB[K, V]) Del(key K) error {
	err := os.Remove(s.fileName(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err == nil {
		s.docLen.Dec()
	}
	return err
}

func (s *JsonDB[K, V]) Len() uint32 {
	return uint32(s.docLen.Value())
}

func (s *JsonDB[K, V]) ForEach(fn func(K, V) bool) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		log.Error().Err(err).Str("path", s.basePath).Msg("Unable to read store")
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, jsonExt) {
			continue
		}
		key, err := s.parseKey(strings.TrimSuffix(name, jsonExt))
		if err != nil {
			continue
		}
		value, ok := s.Get(key)
		if !ok {
			continue
		}
		if !fn(key, value) {
			return
		}
	}
}

func (s *JsonDB[K, V]) Sample(params SampleParams) (map[K]V, error) {
	return sample[K, V](s, s.sampleSize, params), nil
}

func (s *JsonDB[K, V]) Close() error {
	return nil
}
