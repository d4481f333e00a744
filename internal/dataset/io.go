// Package dataset reads the pipeline's input tables and persists its output
// tables. Both CSV and Parquet are supported, chosen by file extension; the
// row shapes mirror the upstream vendors' column names.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/parquet-go/parquet-go"
)

// FormatOf reports "csv" or "parquet" based on the file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".parquet":
		return "parquet", nil
	default:
		return "", fmt.Errorf("unsupported table format %q (want .csv or .parquet)", filepath.Ext(path))
	}
}

// csvColumns reads the header row of a CSV file.
func csvColumns(data []byte) (map[string]bool, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	cols := make(map[string]bool, len(header))
	for _, h := range header {
		cols[strings.TrimSpace(h)] = true
	}
	return cols, nil
}

// parquetColumns opens a parquet file and collects its top-level field names.
func parquetColumns(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet file %s: %w", path, err)
	}

	cols := make(map[string]bool)
	for _, field := range pf.Schema().Fields() {
		cols[field.Name()] = true
	}
	return cols, nil
}

// Columns reports the column names present in a table file.
func Columns(path string) (map[string]bool, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == "parquet" {
		return parquetColumns(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return csvColumns(data)
}

// readRows loads all rows of a table, validating the required columns first.
func readRows[T any](path, table string, required []string) ([]T, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}

	cols, err := Columns(path)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", table, err)
	}
	if err := checkColumns(table, cols, required); err != nil {
		return nil, err
	}

	if format == "parquet" {
		rows, err := parquet.ReadFile[T](path)
		if err != nil {
			return nil, fmt.Errorf("reading parquet table %s: %w", table, err)
		}
		return rows, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("reading csv table %s: %w", table, err)
	}
	return rows, nil
}

// writeRows persists a full table, replacing any previous file.
func writeRows[T any](path, format string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == "parquet" {
		w := parquet.NewGenericWriter[T](f)
		if _, err := w.Write(rows); err != nil {
			return fmt.Errorf("writing parquet table %s: %w", path, err)
		}
		return w.Close()
	}
	if err := gocsv.Marshal(&rows, f); err != nil {
		return fmt.Errorf("writing csv table %s: %w", path, err)
	}
	return nil
}
