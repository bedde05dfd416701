package json

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/noisy-clusters/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Report struct {
	ID      string      `json:"id"`
	K       int         `json:"k"`
	Sizes   map[int]int `json:"sizes"`
	Inertia float64     `json:"inertia"`
}

func newReport() Report {
	return Report{
		ID:      uuid.New().String(),
		K:       3,
		Sizes:   map[int]int{0: 50, 1: 49, 2: 51},
		Inertia: 26.5,
	}
}

func TestStorage(t *testing.T) {

	dir := t.TempDir()

	shards := map[string]storage.Shard{
		"blob":  BlobShard(dir),
		"debug": debugShard(dir),
	}

	for name, shard := range shards {
		t.Run(name, func(t *testing.T) {
			s, err := shard(storage.RunsDir)
			require.NoError(t, err)

			k := storage.Key{Name: name, Label: "summary"}

			var missing Report
			err = s.Load(k, &missing)
			assert.True(t, errors.Is(err, storage.NotFoundErr))

			report := newReport()
			require.NoError(t, s.Store(k, report))

			// overwrite with the latest run
			report = newReport()
			require.NoError(t, s.Store(k, report))

			var loaded Report
			require.NoError(t, s.Load(k, &loaded))
			assert.Equal(t, report, loaded)
		})
	}

	for name := range shards {
		_, err := os.Stat(filepath.Join(dir, storage.RunsDir, name+"_summary.json"))
		assert.NoError(t, err)
	}
}

func debugShard(path string) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewJsonBlob(path, shard, true), nil
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0644))

	var r Report
	err := Load(dir, "bad", &r)
	assert.True(t, errors.Is(err, storage.CouldNotLoadErr))
}

func TestSave_NotADir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte{}, 0644))

	err := Save(f, "report", newReport())
	assert.True(t, errors.Is(err, storage.IOErr))
}
