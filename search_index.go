package amsearch

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/oarkflow/log"

	"github.com/oarkflow/amsearch/lib"
	"github.com/oarkflow/amsearch/tokenizer"
)

func (db *Engine[Schema]) buildIndexes() {
	var s Schema
	db.addIndexes(sortedKeys(db.flattenSchema(s)))
}

func (db *Engine[Schema]) addIndexes(keys []string) {
	for _, key := range keys {
		db.addIndex(key)
	}
}

func (db *Engine[Schema]) addIndex(key string) {
	if slices.Contains(db.indexKeys, key) {
		return
	}
	db.indexes.Set(key, NewIndex())
	db.indexKeys = append(db.indexKeys, key)
}

// reindex rebuilds the field indexes from documents already in the store.
func (db *Engine[Schema]) reindex() {
	count := 0
	db.documents.ForEach(func(id int64, doc Schema) bool {
		document := db.flattenSchema(doc)
		db.m.Lock()
		if len(db.indexKeys) == 0 {
			db.addIndexes(sortedKeys(document))
		}
		db.m.Unlock()
		count++
		db.languages.Set(id, db.defaultLanguage)
		db.indexDocument(id, document, db.defaultLanguage)
		return true
	})
	log.Info().Str("key", db.key).Int("documents", count).Msg("Rebuilt indexes from store")
}

// fieldTokens tokenizes every indexed field of document.
func (db *Engine[Schema]) fieldTokens(document map[string]any, language tokenizer.Language, allowDuplicates bool) map[string]map[string]int {
	db.m.RLock()
	keys := slices.Clone(db.indexKeys)
	db.m.RUnlock()
	fields := make(map[string]map[string]int, len(keys))
	for _, propName := range keys {
		value, ok := document[propName]
		if !ok {
			continue
		}
		tokens := tokensPool.Get()
		clear(tokens)
		err := tokenizer.Tokenize(tokenizer.TokenizeParams{
			Text:            lib.ToString(value),
			Language:        language,
			AllowDuplicates: allowDuplicates,
		}, *db.tokenizerConfig, tokens)
		if err != nil {
			log.Error().Err(err).Str("field", propName).Msg("Unable to tokenize field")
			tokensPool.Put(tokens)
			continue
		}
		fields[propName] = tokens
	}
	return fields
}

// indexDocument adds the fields of document to their indexes.
func (db *Engine[Schema]) indexDocument(id int64, document map[string]any, language tokenizer.Language) {
	fields := db.fieldTokens(document, language, true)
	for propName, tokens := range fields {
		if index, ok := db.indexes.Get(propName); ok {
			index.Insert(id, tokens)
		}
		clear(tokens)
		tokensPool.Put(tokens)
	}
}

func (db *Engine[Schema]) deindexDocument(id int64, document map[string]any, language tokenizer.Language) {
	fields := db.fieldTokens(document, language, true)
	for propName, tokens := range fields {
		if index, ok := db.indexes.Get(propName); ok {
			index.Delete(id, tokens)
		}
		clear(tokens)
		tokensPool.Put(tokens)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// flattenSchema turns a document into field name -> value. Nested maps and
// structs use dot notation.
func (db *Engine[Schema]) flattenSchema(obj any, prefix ...string) map[string]any {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return db.getFieldsFromStruct(v, prefix...)
	case reflect.Map:
		fields := make(map[string]any)
		db.getFieldsFromMap(v, fields, prefix...)
		return fields
	default:
		key := db.sliceField
		if len(prefix) == 1 {
			key = prefix[0]
		}
		return map[string]any{key: fmt.Sprint(v.Interface())}
	}
}

func (db *Engine[Schema]) getFieldsFromMap(v reflect.Value, fields map[string]any, prefix ...string) {
	iter := v.MapRange()
	for iter.Next() {
		field := fmt.Sprint(iter.Key().Interface())
		if len(prefix) == 1 {
			field = prefix[0] + "." + field
		}
		val := iter.Value()
		for val.Kind() == reflect.Interface && !val.IsNil() {
			val = val.Elem()
		}
		if val.Kind() == reflect.Map {
			db.getFieldsFromMap(val, fields, field)
			continue
		}
		if db.rules != nil && !db.rules[field] {
			continue
		}
		if !val.IsValid() {
			fields[field] = nil
			continue
		}
		fields[field] = val.Interface()
	}
}

func (db *Engine[Schema]) getFieldsFromStruct(v reflect.Value, prefix ...string) map[string]any {
	fields := make(map[string]any)
	visibleFields := reflect.VisibleFields(v.Type())
	hasIndexField := false
	for _, field := range visibleFields {
		if _, ok := field.Tag.Lookup("index"); ok {
			hasIndexField = true
			break
		}
	}
	for _, field := range visibleFields {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		propName := field.Name
		if hasIndexField {
			tag, ok := field.Tag.Lookup("index")
			if !ok || tag == "-" {
				continue
			}
			if tag != "" {
				propName = tag
			}
		}
		if len(prefix) == 1 {
			propName = prefix[0] + "." + propName
		}
		value, err := v.FieldByIndexErr(field.Index)
		if err != nil {
			continue
		}
		if value.Kind() == reflect.Struct {
			for key, val := range db.flattenSchema(value.Interface(), propName) {
				fields[key] = val
			}
			continue
		}
		fields[propName] = value.Interface()
	}
	return fields
}
