package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	coinmath "github.com/drakos74/noisy-clusters/internal/math"
	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/drakos74/noisy-clusters/internal/storage"
	"github.com/drakos74/noisy-clusters/internal/storage/file"
	"github.com/rs/zerolog/log"
)

// Header is the fixed column layout of the labeled table.
var Header = []string{"true_x", "true_y", "noisy_x", "noisy_y", "cluster"}

// Write writes the labeled rows to the given path, replacing any existing file.
func Write(path string, rows model.Labeled) error {
	err := file.Write(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(Header); err != nil {
			return fmt.Errorf("could not write header: %v: %w", err, storage.IOErr)
		}
		record := make([]string, len(Header))
		for i, r := range rows {
			record[0] = coinmath.Decimal(r.True.X)
			record[1] = coinmath.Decimal(r.True.Y)
			record[2] = coinmath.Decimal(r.Noisy.X)
			record[3] = coinmath.Decimal(r.Noisy.Y)
			record[4] = strconv.Itoa(r.Label)
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("could not write row '%d': %v: %w", i, err, storage.IOErr)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("could not flush rows: %v: %w", err, storage.IOErr)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("path", path).Int("rows", len(rows)).Msg("could not export table")
		return err
	}
	log.Info().Str("path", path).Int("rows", len(rows)).Msg("exported table")
	return nil
}

// Read loads a labeled table written by Write.
func Read(path string) (model.Labeled, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("could not open '%s': %v: %w", path, err, storage.NotFoundErr)
		}
		return nil, fmt.Errorf("could not open '%s': %v: %w", path, err, storage.CouldNotLoadErr)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = len(Header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse '%s': %v: %w", path, err, storage.CouldNotLoadErr)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("missing header in '%s': %w", path, storage.CouldNotLoadErr)
	}
	for i, h := range Header {
		if records[0][i] != h {
			return nil, fmt.Errorf("unexpected column '%s' at '%d' in '%s': %w", records[0][i], i, path, storage.CouldNotLoadErr)
		}
	}

	rows := make(model.Labeled, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("could not parse line '%d' in '%s': %v: %w", i+2, path, err, storage.CouldNotLoadErr)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parse(record []string) (model.Row, error) {
	var ff [4]float64
	for i := range ff {
		f, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return model.Row{}, err
		}
		ff[i] = f
	}
	label, err := strconv.Atoi(record[4])
	if err != nil {
		return model.Row{}, err
	}
	return model.Row{
		Sample: model.Sample{
			True:  model.Point{X: ff[0], Y: ff[1]},
			Noisy: model.Point{X: ff[2], Y: ff[3]},
		},
		Label: label,
	}, nil
}
