package amsearch

import (
	"os"

	"github.com/oarkflow/json"
	"github.com/oarkflow/xid"

	"github.com/oarkflow/amsearch/tokenizer"
)

const (
	DefaultPath       = "documents"
	DefaultSampleSize = 20
	DefaultCacheSize  = 256
	DefaultSliceField = "value"
	StorageMemory     = "memdb"
	StorageJSON       = "json"
	StorageFlyDB      = "flydb"
)

func defaultIDGenerator(_ any) int64 {
	return xid.New().Int64()
}

type Config struct {
	Key             string              `json:"key"`
	DefaultLanguage tokenizer.Language  `json:"default_language"`
	TokenizerConfig *tokenizer.Config   `json:"tokenizer"`
	IndexKeys       []string            `json:"index_keys"`
	FieldsToStore   []string            `json:"fields_to_store"`
	FieldsToExclude []string            `json:"fields_to_exclude"`
	Rules           map[string]bool     `json:"rules"`
	SliceField      string              `json:"slice_field"`
	Storage         string              `json:"storage"`
	Path            string              `json:"path"`
	ResetPath       bool                `json:"reset_path"`
	SampleSize      int                 `json:"sample_size"`
	CacheSize       int                 `json:"cache_size"`
	IDGenerator     func(doc any) int64 `json:"-"`
}

// GetConfig returns the configuration used for engines created on demand.
func GetConfig(key string) *Config {
	cfg := tokenizer.DefaultConfig()
	return &Config{
		Key:             key,
		DefaultLanguage: tokenizer.AMHARIC,
		TokenizerConfig: &cfg,
		Storage:         StorageMemory,
		Path:            DefaultPath,
	}
}

// LoadConfig reads a JSON encoded Config from file.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeConfigs merges multiple Config structs into one.
func MergeConfigs(configs ...*Config) *Config {
	mergedConfig := &Config{
		Rules: make(map[string]bool),
	}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.Key != "" {
			mergedConfig.Key = cfg.Key
		}
		if cfg.DefaultLanguage != "" {
			mergedConfig.DefaultLanguage = cfg.DefaultLanguage
		}
		if cfg.TokenizerConfig != nil {
			mergedConfig.TokenizerConfig = cfg.TokenizerConfig
		}
		if len(cfg.IndexKeys) > 0 {
			mergedConfig.IndexKeys = append(mergedConfig.IndexKeys, cfg.IndexKeys...)
		}
		if len(cfg.FieldsToStore) > 0 {
			mergedConfig.FieldsToStore = append(mergedConfig.FieldsToStore, cfg.FieldsToStore...)
		}
		if len(cfg.FieldsToExclude) > 0 {
			mergedConfig.FieldsToExclude = append(mergedConfig.FieldsToExclude, cfg.FieldsToExclude...)
		}
		for k, v := range cfg.Rules {
			mergedConfig.Rules[k] = v
		}
		if cfg.SliceField != "" {
			mergedConfig.SliceField = cfg.SliceField
		}
		if cfg.Storage != "" {
			mergedConfig.Storage = cfg.Storage
		}
		if cfg.Path != "" {
			mergedConfig.Path = cfg.Path
		}
		if cfg.ResetPath {
			mergedConfig.ResetPath = cfg.ResetPath
		}
		if cfg.SampleSize != 0 {
			mergedConfig.SampleSize = cfg.SampleSize
		}
		if cfg.CacheSize != 0 {
			mergedConfig.CacheSize = cfg.CacheSize
		}
		if cfg.IDGenerator != nil {
			mergedConfig.IDGenerator = cfg.IDGenerator
		}
	}

	return mergedConfig
}

// withDefaults fills the zero fields of c.
func withDefaults(c *Config) *Config {
	if c.TokenizerConfig == nil {
		cfg := tokenizer.DefaultConfig()
		c.TokenizerConfig = &cfg
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = tokenizer.AMHARIC
	}
	if c.Key == "" {
		c.Key = xid.New().String()
	}
	if c.SliceField == "" {
		c.SliceField = DefaultSliceField
	}
	if c.Storage == "" {
		c.Storage = StorageMemory
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}
	if c.SampleSize == 0 {
		c.SampleSize = DefaultSampleSize
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.IDGenerator == nil {
		c.IDGenerator = defaultIDGenerator
	}
	if len(c.Rules) == 0 {
		c.Rules = nil
	}
	return c
}
