package queries

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/agentstation/trendkit/pkg/errors"
)

// Languages maps ISO 639-1 codes to language names.
type Languages map[string]string

// Country is a row of the country/language mapping.
type Country struct {
	ISO       string
	Name      string
	Languages []string
}

// LoadLanguages reads the language dictionary CSV (alpha_two, lang_name).
func LoadLanguages(path string) (Languages, error) {
	records, err := readTable(path, "alpha_two", "lang_name")
	if err != nil {
		return nil, err
	}
	langs := make(Languages, len(records))
	for _, r := range records {
		if r[0] == "" {
			continue
		}
		if _, dup := langs[r[0]]; dup {
			continue
		}
		langs[r[0]] = r[1]
	}
	return langs, nil
}

// LoadCountries reads the country/language mapping CSV (iso_two,
// country_name, lang). lang is a comma-separated list of ISO 639-1 codes.
// Rows without an ISO code are skipped.
func LoadCountries(path string) ([]Country, error) {
	records, err := readTable(path, "iso_two", "country_name", "lang")
	if err != nil {
		return nil, err
	}

	var countries []Country
	for _, r := range records {
		if r[0] == "" {
			continue
		}
		c := Country{ISO: r[0], Name: r[1]}
		for _, l := range strings.Split(r[2], ",") {
			if l = strings.TrimSpace(l); l != "" {
				c.Languages = append(c.Languages, l)
			}
		}
		countries = append(countries, c)
	}
	return countries, nil
}

// readTable returns the trimmed values of the named columns for every data row.
func readTable(path string, columns ...string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError("csv", path, "missing header row", nil)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}

	index := make([]int, len(columns))
	for i, name := range columns {
		index[i] = -1
		for j, h := range header {
			if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == name {
				index[i] = j
				break
			}
		}
		if index[i] < 0 {
			return nil, errors.NewParseError("csv", path, "missing column "+name, nil)
		}
	}

	var out [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		row := make([]string, len(columns))
		for i, j := range index {
			if j < len(record) {
				row[i] = strings.TrimSpace(record[j])
			}
		}
		out = append(out, row)
	}
	return out, nil
}
