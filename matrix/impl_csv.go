// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Load a numeric table from CSV into a Dense, and write a Dense back.
//   - All-or-nothing ingestion: any malformed record aborts the load and no
//     partial matrix is returned.
//
// Contract:
//   - Header handling is explicit (WithHeader); never auto-detected.
//   - Every record must have the same number of fields as the first data record.
//   - Values are written with strconv.FormatFloat(v, 'g', -1, 64), the shortest
//     representation that parses back to the same float64, so
//     ReadCSV(WriteCSV(m)) reproduces m exactly.
//   - Empty input (or a header-only file) yields a 0×0 matrix.

package matrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	opReadCSV  = "ReadCSV"
	opFromCSV  = "FromCSV"
	opWriteCSV = "WriteCSV"
	opToCSV    = "ToCSV"
)

// ReadCSV parses numeric records from r.
// MAIN DESCRIPTION:
//   - Stream records with encoding/csv, parse each field as float64 and
//     assemble a row-major buffer.
//
// Behavior highlights:
//   - Surrounding whitespace in a field is ignored ("  1.5 " parses).
//   - The column count is fixed by the first data record.
//   - NaN/Inf literals are rejected under the default numeric policy.
//
// Errors:
//   - ErrIO when r fails.
//   - ErrParse on a non-numeric field or a ragged record, with line/column context.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func ReadCSV(r io.Reader, opts ...CSVOption) (*Dense, error) {
	o := gatherCSVOptions(opts...)
	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.FieldsPerRecord = -1 // ragged rows are reported as ErrParse below
	cr.ReuseRecord = true

	var (
		flat  []float64
		rows  int
		cols  = -1
		first = true
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, matrixErrorf(opReadCSV, fmt.Errorf("line %d: %v: %w", pe.Line, pe.Err, ErrParse))
			}
			return nil, matrixErrorf(opReadCSV, fmt.Errorf("%v: %w", err, ErrIO))
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if o.header {
				continue
			}
		}
		if cols < 0 {
			cols = len(rec)
		}
		if len(rec) != cols {
			return nil, matrixErrorf(opReadCSV,
				fmt.Errorf("line %d: %d fields, want %d: %w", line, len(rec), cols, ErrParse))
		}
		for j, field := range rec {
			v, perr := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if perr != nil {
				return nil, matrixErrorf(opReadCSV,
					fmt.Errorf("line %d, column %d: %q: %w", line, j+1, field, ErrParse))
			}
			flat = append(flat, v)
		}
		rows++
	}
	if rows == 0 {
		return NewDense(0, 0)
	}

	m, err := NewDenseFrom(rows, cols, flat)
	if err != nil {
		if errors.Is(err, ErrNaNInf) {
			return nil, matrixErrorf(opReadCSV, fmt.Errorf("%v: %w", err, ErrParse))
		}
		return nil, matrixErrorf(opReadCSV, err)
	}

	return m, nil
}

// FromCSV opens path and delegates to ReadCSV.
// Errors: ErrIO (missing/unreadable file, wrapping the os error), ErrParse.
func FromCSV(path string, opts ...CSVOption) (*Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, matrixErrorf(opFromCSV, errors.Join(ErrIO, err))
	}
	defer f.Close()

	m, err := ReadCSV(f, opts...)
	if err != nil {
		return nil, matrixErrorf(opFromCSV, err)
	}

	return m, nil
}

// WriteCSV writes m to w, one record per row, using ',' as delimiter.
// Errors: ErrNilMatrix; ErrIO when w fails.
// Complexity: O(r*c).
func WriteCSV(w io.Writer, m Matrix) error {
	d, err := densify(m)
	if err != nil {
		return matrixErrorf(opWriteCSV, err)
	}
	cw := csv.NewWriter(w)
	rec := make([]string, d.c)
	for i := 0; i < d.r; i++ {
		for j := 0; j < d.c; j++ {
			rec[j] = strconv.FormatFloat(d.data[i*d.c+j], 'g', -1, 64)
		}
		if err = cw.Write(rec); err != nil {
			return matrixErrorf(opWriteCSV, errors.Join(ErrIO, err))
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return matrixErrorf(opWriteCSV, errors.Join(ErrIO, err))
	}

	return nil
}

// ToCSV creates (or truncates) path and writes m into it.
// Errors: ErrNilMatrix, ErrIO.
func ToCSV(path string, m Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return matrixErrorf(opToCSV, errors.Join(ErrIO, err))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = matrixErrorf(opToCSV, errors.Join(ErrIO, cerr))
		}
	}()
	if err = WriteCSV(f, m); err != nil {
		return matrixErrorf(opToCSV, err)
	}

	return nil
}
