package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/feedscope/pkg/errors"
)

// artifactWriteParams describes rendered artifacts to write to disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // input path; its base name seeds default output names
	output    string // explicit file (single format) or base path
	base      string // when set, every artifact is written to base.<format>
}

// writeArtifacts writes each artifact and returns the written paths in
// format order.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := p.base + "." + format
		if p.base == "" {
			path = outputPath(p.input, p.output, format, len(p.formats) > 1)
		}
		if err := errors.ValidatePath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for one format. An explicit output is used as
// is for a single format and as a base path (extension replaced) for several.
// Without one, the input's base name is used in the working directory.
func outputPath(input, output, format string, multi bool) string {
	if output != "" {
		if !multi {
			return output
		}
		return trimExt(output) + "." + format
	}
	base := "wordcloud"
	if input != "" && input != "-" {
		base = trimExt(filepath.Base(input))
	}
	return base + "." + format
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
