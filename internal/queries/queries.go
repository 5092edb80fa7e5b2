// Package queries builds search-interest explore URLs from a topic keyword
// workbook, for every country and each of its languages.
package queries

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Options controls URL construction.
type Options struct {
	// Timeframe is the "<start> <end>" date range.
	Timeframe string
	// Anchor is the comparison term appended to every query.
	Anchor string
	// HostLanguage is the interface language (hl).
	HostLanguage string
	// ChunkSize is the number of keywords per query.
	ChunkSize int
}

// DefaultOptions returns the options used for the reference data set.
func DefaultOptions() Options {
	return Options{
		Timeframe:    constants.DefaultTimeframe,
		Anchor:       constants.DefaultAnchorTopic,
		HostLanguage: constants.DefaultHostLanguage,
		ChunkSize:    constants.DefaultChunkSize,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.ChunkSize < 1 {
		return errors.NewValidationError("chunk_size", o.ChunkSize, "must be at least 1")
	}
	if strings.TrimSpace(o.Timeframe) == "" {
		return errors.NewValidationError("timeframe", o.Timeframe, "cannot be empty")
	}
	return nil
}

// Query is one generated URL.
type Query struct {
	CountryISO string
	Topic      string
	Keywords   []string
	URL        string
}

// File is the set of queries for one country, language and topic.
type File struct {
	Country      Country
	Language     string
	LanguageName string
	Topic        string
	Queries      []Query
}

// Dir returns the <country>_<language> directory of the file.
func (f File) Dir() string {
	return f.Country.Name + "_" + f.LanguageName
}

// Name returns the file name, <iso>_<lang>_<topic>_queries.csv.
func (f File) Name() string {
	return fmt.Sprintf("%s_%s_%s_queries.csv", f.Country.ISO, f.Language, f.Topic)
}

// Path returns where the file is written below out.
func (f File) Path(out string) string {
	return filepath.Join(out, f.Dir(), constants.QueriesDir, f.Name())
}

// Plan computes the query files for every country, language and topic.
// A language missing from the dictionary is replaced by English, and a topic
// without keywords in a language uses its English keywords. Topics with no
// keywords at all are skipped.
func Plan(topics []Topic, langs Languages, countries []Country, opts Options) ([]File, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var files []File
	for _, country := range countries {
		for _, lang := range country.Languages {
			if _, ok := langs[lang]; !ok {
				lang = constants.FallbackLanguage
			}
			name, ok := langs[lang]
			if !ok {
				return nil, errors.NewValidationError("languages", lang,
					"language dictionary has no entry for the fallback language")
			}

			for _, topic := range topics {
				keywords := topic.KeywordsFor(lang)
				if len(keywords) == 0 {
					continue
				}
				file := File{Country: country, Language: lang, LanguageName: name, Topic: topic.Name}
				for _, group := range chunk(keywords, opts.ChunkSize) {
					file.Queries = append(file.Queries, Query{
						CountryISO: country.ISO,
						Topic:      topic.Name,
						Keywords:   group,
						URL:        BuildURL(country.ISO, group, opts),
					})
				}
				files = append(files, file)
			}
		}
	}
	return files, nil
}

// BuildURL returns the explore URL comparing keywords and the anchor in geo.
func BuildURL(geo string, keywords []string, opts Options) string {
	terms := make([]string, 0, len(keywords)+1)
	for _, kw := range keywords {
		terms = append(terms, escape(kw, "/"))
	}
	if opts.Anchor != "" {
		terms = append(terms, escape(opts.Anchor, ""))
	}

	var sb strings.Builder
	sb.WriteString(constants.TrendsExploreURL)
	sb.WriteString("?date=")
	sb.WriteString(escape(opts.Timeframe, ""))
	sb.WriteString("&geo=")
	sb.WriteString(geo)
	sb.WriteString("&q=")
	sb.WriteString(strings.Join(terms, ","))
	if opts.HostLanguage != "" {
		sb.WriteString("&hl=")
		sb.WriteString(opts.HostLanguage)
	}
	return sb.String()
}

// Write writes each file below out and returns the written paths.
func Write(out string, files []File) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := f.Path(out)
		if err := writeFile(path, f); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	w := csv.NewWriter(out)
	_ = w.Write([]string{"country_iso_two", "topic", "keywords[list]", constants.QueryURLColumn})
	for _, q := range f.Queries {
		_ = w.Write([]string{q.CountryISO, q.Topic, strings.Join(q.Keywords, "; "), q.URL})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		out.Close() //nolint:errcheck,gosec // already failing
		return errors.WrapIO("write", path, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func chunk(items []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// escape percent-encodes s byte-wise, keeping ASCII letters, digits,
// "_.-~" and any byte in safe.
func escape(s, safe string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) || strings.IndexByte(safe, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&15])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~':
		return true
	}
	return false
}
