package storage

import (
	"errors"
	"fmt"
)

const (
	ModelsDir  = "models"
	HistoryDir = "history"
)

// Shard creates a new storage implementation for the given shard.
type Shard func(shard string) (Persistence, error)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a general implementation
type Key struct {
	Name  string `json:"name"`
	Run   string `json:"run"`
	Label string `json:"label"`
}

func (k Key) Path() string {
	if k.Run == "" {
		return fmt.Sprintf("%s_%s", k.Name, k.Label)
	}
	return fmt.Sprintf("%s_%s_%s", k.Name, k.Run, k.Label)
}

// Persistence stores and loads values for the given key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
