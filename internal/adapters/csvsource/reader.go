// Package csvsource reads bootstrap reviews from a CSV file with a header
// row naming ReviewId, ReviewBody, Location and Timestamp (any order, extra
// columns ignored).
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"review_analyzer/internal/domain"
)

var columns = []string{"ReviewId", "ReviewBody", "Location", "Timestamp"}

type File struct{ path string }

func NewFile(path string) *File { return &File{path: path} }

func (f *File) LoadReviews(ctx context.Context) ([]domain.ReviewRecord, error) {
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(ctx, fh)
}

// Read parses every data row of r. A short row is an error; blank lines are
// skipped by encoding/csv.
func Read(ctx context.Context, r io.Reader) ([]domain.ReviewRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []domain.ReviewRecord
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		get := func(col string) (string, error) {
			i := idx[col]
			if i >= len(row) {
				return "", fmt.Errorf("csv line %d: missing %s", line, col)
			}
			return row[i], nil
		}
		var rec domain.ReviewRecord
		for _, dst := range []struct {
			col string
			to  *string
		}{
			{"ReviewId", &rec.ReviewID},
			{"ReviewBody", &rec.ReviewBody},
			{"Location", &rec.Location},
			{"Timestamp", &rec.Timestamp},
		} {
			v, err := get(dst.col)
			if err != nil {
				return nil, err
			}
			*dst.to = v
		}
		out = append(out, rec)
	}
	return out, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, c := range columns {
			if strings.EqualFold(h, c) {
				idx[c] = i
			}
		}
	}
	var missing []string
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv header: missing column(s) %s", strings.Join(missing, ", "))
	}
	return idx, nil
}
