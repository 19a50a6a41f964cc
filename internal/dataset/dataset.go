package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/clipsense/virality/internal/model"
	"github.com/rs/zerolog/log"
)

var (
	// SchemaErr signals a missing required feature or target column.
	SchemaErr = errors.New("schema error")
	// EmptyErr signals that no valid rows survived parsing.
	EmptyErr = errors.New("empty dataset")
)

// Dataset holds the parsed raw feature rows and targets.
type Dataset struct {
	columns []string
	target  string
	xx      [][]float64
	yy      []float64
}

// Parse parses a delimited text table into a dataset.
// The header must contain all feature columns and the target column,
// in any order. Rows with a wrong cell count or non-numeric cells are
// dropped with a warning.
func Parse(text string, target string) (*Dataset, error) {

	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header: %w", EmptyErr)
	}

	header := make(map[string]int, len(records[0]))
	for i, c := range records[0] {
		header[strings.TrimSpace(c)] = i
	}

	required := append(append([]string{}, model.Columns...), target)
	index := make([]int, len(required))
	for i, c := range required {
		at, ok := header[c]
		if !ok {
			return nil, fmt.Errorf("missing column '%s': %w", c, SchemaErr)
		}
		index[i] = at
	}

	ds := &Dataset{
		columns: model.Columns,
		target:  target,
		xx:      make([][]float64, 0, len(records)-1),
		yy:      make([]float64, 0, len(records)-1),
	}

	for n, record := range records[1:] {
		if len(record) != len(records[0]) {
			log.Warn().Int("row", n+1).Int("cells", len(record)).Msg("dropping row with inconsistent cell count")
			continue
		}
		row := make([]float64, model.Dim)
		ok := true
		for i, at := range index[:model.Dim] {
			v, err := strconv.ParseFloat(strings.TrimSpace(record[at]), 64)
			if err != nil {
				log.Warn().Int("row", n+1).Str("column", required[i]).Msg("dropping row with non-numeric cell")
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			continue
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(record[index[model.Dim]]), 64)
		if err != nil {
			log.Warn().Int("row", n+1).Str("column", target).Msg("dropping row with non-numeric target")
			continue
		}
		ds.xx = append(ds.xx, row)
		ds.yy = append(ds.yy, y)
	}

	if len(ds.xx) == 0 {
		return nil, fmt.Errorf("no valid rows: %w", EmptyErr)
	}

	log.Info().Int("rows", len(ds.xx)).Str("target", target).Msg("parsed dataset")

	return ds, nil
}

// Len returns the number of rows.
func (ds *Dataset) Len() int {
	return len(ds.xx)
}

// Columns returns the feature column order.
func (ds *Dataset) Columns() []string {
	return ds.columns
}

// X returns the raw feature rows.
func (ds *Dataset) X() [][]float64 {
	return ds.xx
}

// Y returns the raw targets.
func (ds *Dataset) Y() []float64 {
	return ds.yy
}

// Split shuffles deterministically with the given seed and splits the rows
// into a training and a validation set.
func (ds *Dataset) Split(ratio float64, seed int64) (train, validation *Dataset) {

	perm := rand.New(rand.NewSource(seed)).Perm(ds.Len())

	cut := int(float64(ds.Len()) * ratio)
	if cut < 1 {
		cut = 1
	}
	if cut > ds.Len() {
		cut = ds.Len()
	}

	train = &Dataset{columns: ds.columns, target: ds.target}
	validation = &Dataset{columns: ds.columns, target: ds.target}
	for i, p := range perm {
		if i < cut {
			train.xx = append(train.xx, ds.xx[p])
			train.yy = append(train.yy, ds.yy[p])
		} else {
			validation.xx = append(validation.xx, ds.xx[p])
			validation.yy = append(validation.yy, ds.yy[p])
		}
	}
	return train, validation
}
