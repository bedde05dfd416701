package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/drakos74/noisy-clusters/internal/storage"
	"github.com/rs/zerolog/log"
)

// Write writes the file at the given path through a temporary file in the same directory,
// which is renamed into place only after everything has been flushed.
// On failure the destination is left untouched.
// Errors of the write callback are returned as they are, every other failure wraps storage.IOErr.
func Write(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".%s.*.tmp", filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("could not create file in '%s': %v: %w", dir, err, storage.IOErr)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
				log.Warn().Err(err).Str("file", tmp.Name()).Msg("could not remove temporary file")
			}
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := write(w); err != nil {
		return fmt.Errorf("could not write '%s': %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not flush '%s': %v: %w", path, err, storage.IOErr)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("could not sync '%s': %v: %w", path, err, storage.IOErr)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close '%s': %v: %w", path, err, storage.IOErr)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not rename to '%s': %v: %w", path, err, storage.IOErr)
	}
	committed = true
	return nil
}

// MkDir makes sure the given directory exists.
func MkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		err := os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %v: %w", dir, err, storage.IOErr)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a dir: %s: %w", dir, storage.IOErr)
	}
	return nil
}
