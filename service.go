package amsearch

import (
	"fmt"
	"slices"
	"sync"

	"github.com/oarkflow/xsync"
)

var (
	engines  = xsync.NewMap[string, any]()
	enginesM sync.Mutex
)

// GetEngine returns the engine registered under key, creating one with
// GetConfig(key) when there is none.
func GetEngine[Schema SchemaProps](key string) (*Engine[Schema], error) {
	enginesM.Lock()
	defer enginesM.Unlock()
	if eng, ok := engines.Get(key); ok {
		engine, ok := eng.(*Engine[Schema])
		if !ok {
			return nil, fmt.Errorf("engine %q holds %T", key, eng)
		}
		return engine, nil
	}
	engine, err := New[Schema](GetConfig(key))
	if err != nil {
		return nil, err
	}
	engines.Set(key, engine)
	return engine, nil
}

// SetEngine creates an engine from cfg and registers it under key,
// replacing any engine already there.
func SetEngine[Schema SchemaProps](key string, cfg *Config) (*Engine[Schema], error) {
	cfg.Key = key
	engine, err := New[Schema](cfg)
	if err != nil {
		return nil, err
	}
	AddEngine(key, engine)
	return engine, nil
}

func AddEngine(key string, engine any) {
	enginesM.Lock()
	defer enginesM.Unlock()
	engines.Set(key, engine)
}

func RemoveEngine(key string) {
	enginesM.Lock()
	defer enginesM.Unlock()
	engines.Del(key)
}

// AvailableEngines lists the registered keys in order.
func AvailableEngines() []string {
	var keys []string
	engines.ForEach(func(key string, _ any) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)
	return keys
}
