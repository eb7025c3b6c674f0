package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/ordena/pkg/errors"
	"github.com/arthur-debert/ordena/pkg/types"
)

// FilePrefix prefixes every report artifact name
const FilePrefix = "reporte_jerarquico_"

// maxNameAttempts bounds the suffixes tried when two runs share a timestamp
const maxNameAttempts = 100

// FileName returns the artifact name for a run timestamp
func FileName(timestamp string) string {
	return FilePrefix + timestamp + ".json"
}

// Marshal encodes stats as the indented JSON artifact. Non-ASCII text such
// as category names is written as-is.
func Marshal(stats *types.RunStatistics) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stats); err != nil {
		return nil, errors.Wrap(err, errors.ErrReportWrite, "failed to encode report")
	}
	return buf.Bytes(), nil
}

// WriteArtifact writes the report for stats into dir and returns its path.
// An existing artifact is never overwritten: a second run within the same
// second gets a numbered name.
func WriteArtifact(dir string, stats *types.RunStatistics) (string, error) {
	data, err := Marshal(stats)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrReportWrite, "cannot create reports directory %s", dir).
			WithDetail("dir", dir)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := FileName(stats.Timestamp)
		if attempt > 0 {
			name = fmt.Sprintf("%s%s_%d.json", FilePrefix, stats.Timestamp, attempt)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrReportWrite, "cannot create %s", path).
				WithDetail("path", path)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", errors.Wrapf(err, errors.ErrReportWrite, "cannot write %s", path).
				WithDetail("path", path)
		}
		if err := f.Close(); err != nil {
			return "", errors.Wrapf(err, errors.ErrReportWrite, "cannot close %s", path).
				WithDetail("path", path)
		}
		return path, nil
	}

	return "", errors.Newf(errors.ErrReportWrite, "no free report name for %s in %s", stats.Timestamp, dir)
}
