package json

import (
	"path/filepath"

	"github.com/drakos74/noisy-clusters/internal/storage"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores every key as a json document under <path>/<table>.
type BlobStorage struct {
	path  string
	table string
	debug bool
}

// BlobShard creates blob storages rooted at the given directory, one table per shard.
func BlobShard(path string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(path, shard, false), nil
	}
}

func NewJsonBlob(path, table string, debug bool) *BlobStorage {
	return &BlobStorage{
		path:  path,
		table: table,
		debug: debug,
	}
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	p := filepath.Join(s.path, s.table)
	err := Save(p, k.Path(), value)
	if err == nil && s.debug {
		log.Info().Str("path", p).Str("file", k.Path()).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(filepath.Join(s.path, s.table), k.Path(), value)
}
