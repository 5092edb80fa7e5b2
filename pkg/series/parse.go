package series

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/agentstation/trendkit/pkg/errors"
)

// PreambleLines is the number of physical lines before the header row.
const PreambleLines = 2

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadExport parses the export at path.
func ReadExport(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	return ParseExport(f, path)
}

// ParseExport parses an export: two preamble lines, a header row whose first
// field is the period column, then data rows. Cells that are not numbers
// become NaN; the threshold marker becomes 0. Short rows are padded with NaN
// and surplus fields are ignored. A repeated period overwrites the earlier row.
func ParseExport(r io.Reader, source string) (Table, error) {
	reader, err := openRecords(r, source)
	if err != nil {
		return Table{}, err
	}

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, errors.NewParseError("csv", source, "missing header row", nil)
	}
	if err != nil {
		return Table{}, csvError(source, err)
	}

	t := Table{Source: source, Columns: NormalizeColumns(header[1:])}
	seen := make(map[string]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, csvError(source, err)
		}

		period := strings.TrimSpace(record[0])
		if period == "" {
			continue
		}

		values := make([]float64, len(t.Columns))
		for i := range values {
			cell := ""
			if i+1 < len(record) {
				cell = record[i+1]
			}
			values[i] = ParseValue(cell)
		}

		if idx, ok := seen[period]; ok {
			t.Rows[idx].Values = values
			continue
		}
		seen[period] = len(t.Rows)
		t.Rows = append(t.Rows, Row{Period: period, Values: values})
	}

	return t, nil
}

// ReadHeader returns the normalized series names of the export at path
// without reading its data rows. The period column is not included.
func ReadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	reader, err := openRecords(f, path)
	if err != nil {
		return nil, err
	}
	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", path, "missing header row", nil)
	}
	if err != nil {
		return nil, csvError(path, err)
	}
	return NormalizeColumns(header[1:]), nil
}

// openRecords decodes r to UTF-8, skips the preamble and returns a CSV
// reader positioned at the header row.
func openRecords(r io.Reader, source string) (*csv.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", source, err)
	}
	data, err = decodeUTF8(data)
	if err != nil {
		return nil, errors.NewParseError("csv", source, "cannot decode text", err)
	}

	br := bufio.NewReader(bytes.NewReader(data))
	for i := 0; i < PreambleLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			return nil, errors.NewParseError("csv", source, "missing header row", nil)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader, nil
}

// decodeUTF8 converts export bytes to UTF-8. A byte-order mark decides the
// encoding when present; otherwise text that is not already UTF-8 is
// sniffed and converted.
func decodeUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
		return out, err
	}
	if utf8.Valid(data) && bytes.IndexByte(data, 0) < 0 {
		return data, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return data, nil
	}
	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		return data, nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return data, nil
	}
	return out, nil
}

func csvError(source string, err error) error {
	if pe, ok := err.(*csv.ParseError); ok {
		return &errors.ParseError{
			Format:  "csv",
			File:    source,
			Line:    pe.Line + PreambleLines,
			Message: pe.Err.Error(),
			Err:     err,
		}
	}
	return errors.WrapParse("csv", source, err)
}
