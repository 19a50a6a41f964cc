package json

import (
	"fmt"
	"path/filepath"

	"github.com/clipsense/virality/internal/storage"
)

// Local is a json file system storage implementation.
type Local struct {
	path string
}

// NewLocal creates a new local storage for the given shard.
func NewLocal(path string, shard string) *Local {
	return &Local{path: filepath.Join(path, shard)}
}

// Shard creates a local storage factory rooted at the given path.
func Shard(path string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewLocal(path, shard), nil
	}
}

// Store stores the given value at the key.
func (l *Local) Store(k storage.Key, value interface{}) error {
	return Save(l.path, fileName(k), value)
}

// Load loads the value for the given key.
func (l *Local) Load(k storage.Key, value interface{}) error {
	return Load(l.path, fileName(k), value)
}

func fileName(k storage.Key) string {
	return fmt.Sprintf("%s.json", k.Path())
}
