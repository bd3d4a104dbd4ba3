package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// ReadDataset decodes and normalizes a dataset from r. It does not close r.
func ReadDataset(r io.Reader) (*feedback.Dataset, error) {
	var d feedback.Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	if err := d.Normalize(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ImportDataset reads a dataset file at path.
func ImportDataset(path string) (*feedback.Dataset, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDataset(f)
}

// ReadKeywords decodes a keyword list from r. The input is either a bare
// [{"word","count"}] array or a dataset object; for a dataset without a
// keyword list the keywords are merged from its records.
func ReadKeywords(r io.Reader) ([]feedback.Keyword, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read keywords")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var kws []feedback.Keyword
		if err := json.Unmarshal(trimmed, &kws); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode keywords")
		}
		if err := feedback.ValidateKeywords(kws); err != nil {
			return nil, err
		}
		return kws, nil
	}

	d, err := ReadDataset(bytes.NewReader(trimmed))
	if err != nil {
		return nil, err
	}
	if len(d.Keywords) > 0 {
		return d.Keywords, nil
	}
	return aggregate.KeywordFrequencies(d.Feedbacks), nil
}

// ImportKeywords reads a keyword file at path.
func ImportKeywords(path string) ([]feedback.Keyword, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKeywords(f)
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
