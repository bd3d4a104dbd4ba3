package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/cloud"
	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// WriteDataset encodes a dataset as indented JSON. The output can be read
// back with [ReadDataset].
func WriteDataset(d *feedback.Dataset, w io.Writer) error {
	return writeJSON(w, d)
}

// WriteReport encodes an aggregate report as indented JSON.
func WriteReport(rep *aggregate.Report, w io.Writer) error {
	return writeJSON(w, rep)
}

// WriteLayout encodes a layout result, dropped items included, as indented JSON.
func WriteLayout(res *cloud.Result, w io.Writer) error {
	return writeJSON(w, res)
}

// ExportReport writes an aggregate report to a JSON file at path.
func ExportReport(rep *aggregate.Report, path string) error {
	return export(path, func(w io.Writer) error { return WriteReport(rep, w) })
}

// ExportLayout writes a layout result to a JSON file at path.
func ExportLayout(res *cloud.Result, path string) error {
	return export(path, func(w io.Writer) error { return WriteLayout(res, w) })
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func export(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
