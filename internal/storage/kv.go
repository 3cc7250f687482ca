package storage

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/momentum/internal/logger"
)

// KV adapts a Backend to the Adapter contract using a JSON text encoding.
type KV struct {
	backend Backend
}

func NewKV(backend Backend) *KV {
	return &KV{backend: backend}
}

// Backend returns the wrapped backend
func (k *KV) Backend() Backend {
	return k.backend
}

func (k *KV) Load(key string, v any) bool {
	text, ok, err := k.backend.Get(key)
	if err != nil {
		logger.Warn("Failed to read stored value", "key", key, "backend", k.backend.Location(), "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := Decode(text, v); err != nil {
		logger.Warn("Ignoring undecodable stored value", "key", key, "error", err)
		return false
	}
	return true
}

func (k *KV) Save(key string, v any) {
	text, err := Encode(v)
	if err != nil {
		logger.Warn("Failed to encode value", "key", key, "error", err)
		return
	}
	if err := k.backend.Put(key, text); err != nil {
		logger.Warn("Failed to persist value", "key", key, "backend", k.backend.Location(), "error", err)
	}
}

// Encode serializes v to its stored text form
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize value: %w", err)
	}
	return string(data), nil
}

// Decode parses stored text into v
func Decode(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}
	return nil
}
