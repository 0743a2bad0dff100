package ioformats

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"storefront-crawler/internal/models"
)

var ErrNoRecords = errors.New("no store records to write")

// WriteStores writes a header and one row per record, each with n product
// slots, in input order.
func WriteStores(w io.Writer, stores []models.StoreRecord, n int) error {
	if len(stores) == 0 {
		return ErrNoRecords
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Header(n)); err != nil {
		return err
	}
	for _, s := range stores {
		if err := cw.Write(s.Row(n)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStoresFile writes the table to path. Nothing is created when stores is
// empty.
func WriteStoresFile(path string, stores []models.StoreRecord, n int) (err error) {
	if len(stores) == 0 {
		return ErrNoRecords
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteStores(f, stores, n)
}

// ReadStores reads a table written by WriteStores.
func ReadStores(r io.Reader) ([]models.StoreRecord, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRecords
	}
	out := make([]models.StoreRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, models.StoreFromRow(rows[0], row))
	}
	return out, nil
}

// WriteNDJSON writes any JSON-marshalable items as NDJSON to w.
func WriteNDJSON(w io.Writer, items []any) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
