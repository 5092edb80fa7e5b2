package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/trendkit/internal/cmd/emoji"
	"github.com/agentstation/trendkit/internal/ledger"
	"github.com/agentstation/trendkit/pkg/reconcile"
)

// TopicRow is the printable form of one reconciled topic.
type TopicRow struct {
	Dir      string    `json:"dir" yaml:"dir"`
	Topic    string    `json:"topic" yaml:"topic"`
	Files    int       `json:"files" yaml:"files"`
	Rows     int       `json:"rows" yaml:"rows"`
	Raw      string    `json:"raw" yaml:"raw"`
	Adjusted string    `json:"adjusted" yaml:"adjusted"`
	Anchor   string    `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	Scales   []float64 `json:"scales,omitempty" yaml:"scales,omitempty"`
	Reason   string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// ReportView is the printable form of a merge run.
type ReportView struct {
	RunID    string     `json:"run_id" yaml:"run_id"`
	DryRun   bool       `json:"dry_run" yaml:"dry_run"`
	Duration string     `json:"duration" yaml:"duration"`
	Failed   int        `json:"failed" yaml:"failed"`
	Topics   []TopicRow `json:"topics" yaml:"topics"`
}

// NewReportView converts a run report for printing.
func NewReportView(r *reconcile.Report) ReportView {
	view := ReportView{
		RunID:    r.RunID,
		DryRun:   r.DryRun,
		Duration: r.Duration().Round(time.Millisecond).String(),
		Failed:   r.Failures(),
		Topics:   make([]TopicRow, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		row := TopicRow{
			Dir:      res.Dir,
			Topic:    res.Topic,
			Files:    len(res.Files),
			Rows:     res.Rows,
			Raw:      string(res.Raw.Status),
			Adjusted: string(res.Adjusted.Status),
			Anchor:   res.Anchor,
			Scales:   res.Scales,
			Reason:   reason(res),
		}
		view.Topics = append(view.Topics, row)
	}
	return view
}

func reason(res reconcile.Result) string {
	if res.Err != nil {
		return res.Err.Error()
	}
	if res.Adjusted.Reason != "" {
		return res.Adjusted.Reason
	}
	return res.Raw.Reason
}

// TableData implements Tabular.
func (v ReportView) TableData() Data {
	d := Data{
		Headers:         []string{"Dir", "Topic", "Files", "Rows", "Raw", "Adjusted", "Anchor", "Note"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, t := range v.Topics {
		d.Rows = append(d.Rows, []string{
			t.Dir,
			t.Topic,
			strconv.Itoa(t.Files),
			strconv.Itoa(t.Rows),
			StatusCell(reconcile.Status(t.Raw)),
			StatusCell(reconcile.Status(t.Adjusted)),
			dash(t.Anchor),
			dash(t.Reason),
		})
	}
	return d
}

// StatusCell prefixes a status with its symbol.
func StatusCell(s reconcile.Status) string {
	return StatusSymbol(s) + " " + string(s)
}

// StatusSymbol returns the symbol for a status.
func StatusSymbol(s reconcile.Status) string {
	switch s {
	case reconcile.StatusWritten, reconcile.StatusComputed:
		return emoji.Success
	case reconcile.StatusFailed, reconcile.StatusAborted:
		return emoji.Error
	case reconcile.StatusEmpty, reconcile.StatusNoAnchor:
		return emoji.Warning
	default:
		return emoji.Optional
	}
}

// HistoryView is the printable form of ledger entries.
type HistoryView []ledger.Entry

// TableData implements Tabular.
func (h HistoryView) TableData() Data {
	d := Data{
		Headers: []string{"Run", "Recorded", "Dir", "Topic", "Files", "Raw", "Adjusted", "Anchor", "Error"},
	}
	for _, e := range h {
		d.Rows = append(d.Rows, []string{
			shortID(e.RunID),
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			e.Dir,
			e.Topic,
			strconv.Itoa(e.Files),
			StatusCell(reconcile.Status(e.RawStatus)),
			StatusCell(reconcile.Status(e.AdjustedStatus)),
			dash(e.Anchor),
			dash(e.Error),
		})
	}
	return d
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// QueryFileRow is the printable form of one generated query file.
type QueryFileRow struct {
	Path     string `json:"path" yaml:"path"`
	Country  string `json:"country" yaml:"country"`
	Language string `json:"language" yaml:"language"`
	Topic    string `json:"topic" yaml:"topic"`
	Queries  int    `json:"queries" yaml:"queries"`
}

// QueryFilesView lists generated query files.
type QueryFilesView []QueryFileRow

// TableData implements Tabular.
func (v QueryFilesView) TableData() Data {
	d := Data{
		Headers:         []string{"Country", "Language", "Topic", "Queries", "Path"},
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
	for _, r := range v {
		d.Rows = append(d.Rows, []string{r.Country, r.Language, r.Topic, strconv.Itoa(r.Queries), r.Path})
	}
	return d
}
