package browser

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/agentstation/trendkit/pkg/errors"
)

// LoadLinks returns the non-empty, trimmed values of column in the CSV at path.
func LoadLinks(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	return ReadLinks(f, path, column)
}

// ReadLinks is LoadLinks over a reader; source names it in errors.
func ReadLinks(r io.Reader, source, column string) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", source, "missing header row", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", source, err)
	}

	col := -1
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.NewParseError("csv", source, "missing column "+column, nil)
	}

	var links []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", source, err)
		}
		if col >= len(record) {
			continue
		}
		if link := strings.TrimSpace(record[col]); link != "" {
			links = append(links, link)
		}
	}
	return links, nil
}

// Batch splits links into consecutive groups of at most size.
func Batch(links []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var batches [][]string
	for start := 0; start < len(links); start += size {
		batches = append(batches, links[start:min(start+size, len(links))])
	}
	return batches
}
