// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/sbdet/matrix"
	"gonum.org/v1/gonum/mat"
)

// SaveMatrix writes m in gonum's binary mat.Dense format.
// A *matrix.Sparse is materialized first; the file format has no sparse form.
func SaveMatrix(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("persist: SaveMatrix: %w", err)
	}
	var data []float64
	switch v := m.(type) {
	case *matrix.Dense:
		data = v.Data()
	case *matrix.Sparse:
		data = v.ToDense().Data()
	default:
		data = make([]float64, 0, m.Rows()*m.Cols())
		for i := 0; i < m.Rows(); i++ {
			for j := 0; j < m.Cols(); j++ {
				x, err := m.At(i, j)
				if err != nil {
					return fmt.Errorf("persist: SaveMatrix: %w", err)
				}
				data = append(data, x)
			}
		}
	}
	d := mat.NewDense(m.Rows(), m.Cols(), data)
	if _, err := d.MarshalBinaryTo(w); err != nil {
		return fmt.Errorf("persist: SaveMatrix: %w", err)
	}

	return nil
}

// LoadMatrix reads a matrix written by SaveMatrix.
func LoadMatrix(r io.Reader) (*matrix.Dense, error) {
	var d mat.Dense
	if _, err := d.UnmarshalBinaryFrom(r); err != nil {
		return nil, fmt.Errorf("persist: LoadMatrix: %w", err)
	}
	rows, cols := d.Dims()
	out, err := matrix.NewDenseFrom(rows, cols, d.RawMatrix().Data)
	if err != nil {
		return nil, fmt.Errorf("persist: LoadMatrix: %w", err)
	}

	return out, nil
}

// WriteCSV writes m one row per line, values in shortest round-trip form.
func WriteCSV(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("persist: WriteCSV: %w", err)
	}
	cw := csv.NewWriter(w)
	record := make([]string, m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := range record {
			v, err := m.At(i, j)
			if err != nil {
				return fmt.Errorf("persist: WriteCSV: %w", err)
			}
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("persist: WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("persist: WriteCSV: %w", err)
	}

	return nil
}

// ReadCSV parses a rectangular numeric CSV body into a Dense.
// Errors: ErrMalformed for an empty body, ragged rows or non-numeric cells.
func ReadCSV(r io.Reader) (*matrix.Dense, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("persist: ReadCSV: %v: %w", err, ErrMalformed)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("persist: ReadCSV: empty body: %w", ErrMalformed)
	}
	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("persist: ReadCSV: (%d,%d) %q: %w", i, j, cell, ErrMalformed)
			}
			rows[i][j] = v
		}
	}
	out, err := matrix.NewDenseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("persist: ReadCSV: %v: %w", err, ErrMalformed)
	}

	return out, nil
}
