package lib

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/oarkflow/json"
)

func ToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(value)
	}
}

type ProcessCallback[T any] func(record T) error

// StreamJSONFile decodes a JSON array file one element at a time and hands
// each element to callback.
func StreamJSONFile[T any](filePath string, callback ProcessCallback[T]) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return StreamJSON(bufio.NewReader(file), callback)
}

func StreamJSON[T any](r io.Reader, callback ProcessCallback[T]) error {
	decoder := json.NewDecoder(r)
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("failed to read opening token: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected a JSON array, got %v", token)
	}
	for decoder.More() {
		var record T
		if err := decoder.Decode(&record); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		if err := callback(record); err != nil {
			return fmt.Errorf("callback error: %w", err)
		}
	}
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("failed to read closing token: %w", err)
	}
	return nil
}

// CRC32Checksum hashes the JSON encoding of data; 0 means it could not be
// encoded.
func CRC32Checksum(data any) int64 {
	bt, err := json.Marshal(data)
	if err != nil {
		return 0
	}
	return int64(crc32.ChecksumIEEE(bt))
}
