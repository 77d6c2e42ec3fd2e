package report

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/xuri/excelize/v2"

	"github.com/reviewscope/reviewscope/pkg/domain"
)

const (
	maxSheetName = 31
	maxCellChars = 32767
	timeLayout   = "2006-01-02 15:04"
)

var steamColumns = []string{"Review ID", "Created", "Language", "Recommended", "Playtime at Review (h)", "Votes Up",
	"Original Text", "English Text", "Translation Status", "Analysis Status", "Sentiment", "Positive Themes",
	"Negative Themes", "Feature Requests", "Bug Reports"}

var videoColumns = []string{"Video ID", "Uploaded", "Channel", "Title", "URL", "Sentiment", "Summary",
	"Positive Themes", "Negative Themes", "Bug Reports", "Feature Requests", "Balance", "Gameplay Loop", "Monetization"}

func reviewRow(r *domain.Review) []any {
	row := []any{
		r.RecommendationID,
		unixTime(r.TimestampCreated),
		r.OriginalLanguage,
		yesNo(r.VotedUp),
		math.Round(float64(r.PlaytimeAtReview)/6) / 10, // minutes to hours, one decimal
		r.VotesUp,
		r.OriginalText,
		r.DisplayText(),
		string(r.TranslationStatus),
		string(r.AnalysisStatus),
	}
	if a := r.Analysis; a != nil {
		return append(row, string(a.Sentiment), joinList(a.PositiveThemes), joinList(a.NegativeThemes),
			joinList(a.FeatureRequests), joinList(a.BugReports))
	}
	return append(row, "", "", "", "", "")
}

func videoRow(v *domain.Video) []any {
	row := []any{
		v.VideoID,
		v.UploadTime.UTC().Format(timeLayout),
		v.ChannelName,
		v.Title,
		"https://www.youtube.com/watch?v=" + v.VideoID,
	}
	if a := v.Analysis; a != nil {
		return append(row, string(a.Sentiment), a.Summary, joinList(a.PositiveThemes), joinList(a.NegativeThemes),
			joinList(a.BugReports), joinList(a.FeatureRequests), joinList(a.BalanceFeedback),
			joinList(a.GameplayLoopFeedback), joinList(a.MonetizationFeedback))
	}
	return append(row, "", "", "", "", "", "", "", "", "")
}

// render makes the report workbook, a rendering failure produces a workbook with an Error sheet instead
func render(doc *document) ([]byte, error) {
	data, err := renderReport(doc)
	if err != nil {
		lgr.Printf("[WARN] can't render %s report: %v", doc.Kind, err)
		return renderError(doc, err)
	}
	return data, nil
}

func renderReport(doc *document) ([]byte, error) {
	wb, err := newWorkbook("Overview")
	if err != nil {
		return nil, err
	}
	defer wb.close()

	if err := wb.writeOverview(doc); err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	for _, g := range doc.Groups {
		sheet, err := wb.addSheet(g.Name)
		if err != nil {
			return nil, err
		}
		if err := wb.writeTable(sheet, 1, doc.Columns, g.Rows); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	all, err := wb.addSheet("All Items")
	if err != nil {
		return nil, err
	}
	if err := wb.writeTable(all, 1, doc.Columns, doc.Overall.Rows); err != nil {
		return nil, fmt.Errorf("all items: %w", err)
	}
	return wb.bytes()
}

// renderStatus makes a workbook with a single Status sheet, used when there is nothing to report
func renderStatus(doc *document, status string) ([]byte, error) {
	return renderSingle(doc, "Status", []any{"Status", status})
}

// renderError makes a workbook with a single Error sheet describing the failure
func renderError(doc *document, cause error) ([]byte, error) {
	data, err := renderSingle(doc, "Error", []any{"Error", cause.Error()})
	if err != nil {
		return nil, fmt.Errorf("render error workbook for %v: %w", cause, err)
	}
	return data, nil
}

func renderSingle(doc *document, sheet string, line []any) ([]byte, error) {
	wb, err := newWorkbook(sheet)
	if err != nil {
		return nil, err
	}
	defer wb.close()
	rows := append(headerRows(doc), line)
	if err := wb.writeRows(sheet, 1, rows); err != nil {
		return nil, err
	}
	return wb.bytes()
}

func headerRows(doc *document) [][]any {
	return [][]any{
		{doc.Title},
		{"Window", fmt.Sprintf("%s - %s", doc.Window.Start.UTC().Format(timeLayout), doc.Window.End.UTC().Format(timeLayout))},
		{"Generated", doc.GeneratedAt.Format(timeLayout)},
	}
}

// workbook wraps an excelize file, keeping sheet names unique
type workbook struct {
	f     *excelize.File
	names sheetNames
	bold  int
}

func newWorkbook(first string) (*workbook, error) {
	f := excelize.NewFile()
	wb := &workbook{f: f, names: sheetNames{}}
	name := wb.names.unique(first)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename first sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("make style: %w", err)
	}
	wb.bold = bold
	return wb, nil
}

func (w *workbook) addSheet(name string) (string, error) {
	sheet := w.names.unique(name)
	if _, err := w.f.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("add sheet %q: %w", sheet, err)
	}
	return sheet, nil
}

func (w *workbook) writeOverview(doc *document) error {
	columns := []string{"Group", "Items", "Positive", "Negative"}
	if doc.Kind == "youtube" {
		columns = append(columns, "Mixed", "Neutral")
	}
	columns = append(columns, "Positive %", "Summary", "Positive Themes", "Negative Themes", "Feature Requests", "Bug Reports")

	groups := make([]*group, 0, len(doc.Groups)+1)
	groups = append(groups, doc.Groups...)
	groups = append(groups, doc.Overall)
	rows := make([][]any, 0, len(groups))
	for _, g := range groups {
		row := []any{g.Name, g.Stats.Count, g.Stats.Positive, g.Stats.Negative}
		if doc.Kind == "youtube" {
			row = append(row, g.Stats.Mixed, g.Stats.Neutral)
		}
		row = append(row, math.Round(g.Stats.PositiveRatio()*1000)/10)
		if s := g.Summary.Value; s != nil {
			row = append(row, s.Summary, joinList(s.PositiveThemes), joinList(s.NegativeThemes),
				joinList(s.FeatureRequests), joinList(s.BugReports))
		} else {
			row = append(row, g.Summary.Err, "", "", "", "")
		}
		rows = append(rows, row)
	}

	sheet := w.f.GetSheetName(0)
	if err := w.writeRows(sheet, 1, headerRows(doc)); err != nil {
		return err
	}
	return w.writeTable(sheet, 5, columns, rows)
}

// writeTable writes a bold header row followed by rows, starting at row number start
func (w *workbook) writeTable(sheet string, start int, columns []string, rows [][]any) error {
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := w.writeRows(sheet, start, [][]any{header}); err != nil {
		return err
	}
	if err := w.f.SetRowStyle(sheet, start, start, w.bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := w.f.SetColWidth(sheet, "A", columnName(len(columns)), 18); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	return w.writeRows(sheet, start+1, rows)
}

func (w *workbook) writeRows(sheet string, start int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			if s, ok := v.(string); ok {
				v = truncateRunes(s, maxCellChars)
			}
			values[j] = v
		}
		if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", start+i, err)
		}
	}
	return nil
}

func (w *workbook) bytes() ([]byte, error) {
	w.f.SetActiveSheet(0)
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *workbook) close() {
	if err := w.f.Close(); err != nil {
		lgr.Printf("[WARN] can't close workbook: %v", err)
	}
}

// sheetNames tracks used sheet names, case insensitive like excel does
type sheetNames map[string]bool

// unique returns a valid sheet name derived from name which isn't used yet
func (s sheetNames) unique(name string) string {
	base := sanitizeSheetName(name)
	candidate := base
	for i := 2; s[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	s[strings.ToLower(candidate)] = true
	return candidate
}

// sanitizeSheetName replaces characters excel rejects in sheet names and trims to 31 characters
func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case strings.ContainsRune(`[]:*?/\`, r):
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, name)
	name = strings.Trim(strings.TrimSpace(name), "'")
	name = strings.TrimSpace(truncateRunes(name, maxSheetName))
	if name == "" {
		return "Sheet"
	}
	return name
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func columnName(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		return "A"
	}
	return name
}

func joinList(items []string) string { return strings.Join(items, "\n") }

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func unixTime(ts int64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(timeLayout)
}
