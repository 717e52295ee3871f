package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/oarkflow/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/amsearch"
	"github.com/oarkflow/amsearch/tokenizer"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"analyze", []string{"-text", "ሰላም ለኢትዮጵያውያን እና"}, "ሰላ ዒትዮጵያ\n", nil},
		{"analyze english", []string{"-lang", "en", "-text", "searching"}, "search\n", nil},
		{"stem", []string{"-stem", "ሰላም"}, "ሰላም\tሰላ\n", nil},
		{"unknown language", []string{"-lang", "xx", "-text", "ሰላም"}, "", tokenizer.ErrLanguageNotSupported},
		{"nothing to do", nil, "", errUsage},
		{"help", []string{"-h"}, "", flag.ErrHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(tt.args, &out)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunStemJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-json", "-stem", "ሰላም መጽሐፍ"}, &out))
	var stems map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &stems))
	assert.Equal(t, "ሰላ", stems["ሰላም"])
	assert.Contains(t, stems, "መጽሀፍ")
}

func TestRunPreloadsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "docs.json")
	docs := `[{"title":"መጽሐፍ ቤት"},{"title":"ስልክ"},{"title":"ተማሪዎች"}]`
	require.NoError(t, os.WriteFile(file, []byte(docs), 0o644))

	key := "cli-preload"
	t.Cleanup(func() { amsearch.RemoveEngine(key) })

	var out bytes.Buffer
	require.NoError(t, run([]string{"-file", file, "-key", key}, &out))
	engine, err := amsearch.GetEngine[map[string]any](key)
	require.NoError(t, err)
	assert.Equal(t, 3, engine.DocumentLen())

	result, err := engine.Search(&amsearch.Params{Query: "መጽሐፍ"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	err = run([]string{"-file", filepath.Join(dir, "missing.json"), "-key", key}, &out)
	assert.Error(t, err)
}
