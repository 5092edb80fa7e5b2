package queries

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/trendkit/pkg/constants"
	"github.com/agentstation/trendkit/pkg/errors"
)

// Topic is one workbook sheet: keywords per ISO 639-1 language code.
type Topic struct {
	Name     string
	Keywords map[string][]string
}

// KeywordsFor returns the topic's keywords in lang, or its English keywords
// when lang has none.
func (t Topic) KeywordsFor(lang string) []string {
	if kw := t.Keywords[lang]; len(kw) > 0 {
		return kw
	}
	return t.Keywords[constants.FallbackLanguage]
}

// LoadWorkbook reads the topic keyword workbook. Each sheet is a topic; its
// first row holds language codes and the rows below hold keywords. Blank
// cells and untranslatable markers are dropped.
func LoadWorkbook(path string) ([]Topic, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	var topics []Topic
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, errors.NewParseError("xlsx", path, "cannot read sheet "+sheet, err)
		}
		topics = append(topics, topicFromRows(sheet, rows))
	}
	return topics, nil
}

func topicFromRows(name string, rows [][]string) Topic {
	topic := Topic{Name: name, Keywords: make(map[string][]string)}
	if len(rows) == 0 {
		return topic
	}

	header := rows[0]
	for col, code := range header {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		keywords := topic.Keywords[code]
		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			kw := strings.TrimSpace(row[col])
			if kw == "" || kw == constants.InvalidTranslationMarker {
				continue
			}
			keywords = append(keywords, kw)
		}
		topic.Keywords[code] = keywords
	}
	return topic
}
