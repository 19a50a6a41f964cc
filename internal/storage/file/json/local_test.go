package json

import (
	"testing"

	"github.com/clipsense/virality/internal/storage"
	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestLocal_StoreLoad(t *testing.T) {

	shard, err := Shard(t.TempDir())("models")
	assert.NoError(t, err)

	key := storage.Key{Name: "virality", Run: "run-1", Label: "artifact"}

	in := payload{Name: "test", Values: []float64{1, 2, 3}}
	err = shard.Store(key, in)
	assert.NoError(t, err)

	var out payload
	err = shard.Load(key, &out)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLocal_LoadMissing(t *testing.T) {

	shard, err := Shard(t.TempDir())("models")
	assert.NoError(t, err)

	var out payload
	err = shard.Load(storage.Key{Name: "missing"}, &out)
	assert.ErrorIs(t, err, storage.NotFoundErr)
}
