package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/okian/hackstack/internal/domain/model"
	"github.com/okian/hackstack/internal/smoke"
)

const (
	formatTable = "table"
	formatJSON  = "json"

	maxCellWidth = 48
)

type recommendation struct {
	Stage string                 `json:"stage"`
	Items []model.Recommendation `json:"items"`
}

type searchResult struct {
	Stage string            `json:"stage"`
	Count int               `json:"count"`
	Items []model.Hackathon `json:"items"`
}

func validFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// render writes v in the requested format.
func render(w io.Writer, format string, v any) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	switch v := v.(type) {
	case recommendation:
		return recommendationTable(w, v)
	case searchResult:
		return searchTable(w, v)
	case model.CatalogStats:
		return statsTable(w, v)
	case smoke.Stats:
		return smokeTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", v)
	}
}

func recommendationTable(w io.Writer, r recommendation) error {
	if len(r.Items) == 0 {
		_, err := fmt.Fprintln(w, "No recommendations.")
		return err
	}
	fmt.Fprintf(w, "Stage: %s\n", r.Stage)
	rows := make([][]string, 0, len(r.Items))
	for i, rec := range r.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.ID,
			truncate(rec.Title, maxCellWidth),
			strconv.Itoa(rec.ConfidenceScore),
			rec.Reason,
		})
	}
	return table(w, []any{"#", "ID", "Title", "Score", "Reason"}, rows)
}

func searchTable(w io.Writer, r searchResult) error {
	if len(r.Items) == 0 {
		_, err := fmt.Fprintln(w, "No hackathons found.")
		return err
	}
	fmt.Fprintf(w, "Stage: %s (%d results)\n", r.Stage, r.Count)
	rows := make([][]string, 0, len(r.Items))
	for _, h := range r.Items {
		rows = append(rows, []string{
			h.ID,
			truncate(h.Title, maxCellWidth),
			h.Domain,
			string(h.Level),
			string(h.Mode),
			string(h.Status),
			strconv.Itoa(h.DaysLeft),
			strings.Join(h.TechStack, ", "),
		})
	}
	return table(w, []any{"ID", "Title", "Domain", "Level", "Mode", "Status", "Days", "Tech"}, rows)
}

func statsTable(w io.Writer, s model.CatalogStats) error {
	return table(w, []any{"Metric", "Value"}, [][]string{
		{"total", strconv.Itoa(s.Total)},
		{"open", strconv.Itoa(s.Open)},
		{"closing soon", strconv.Itoa(s.ClosingSoon)},
		{"ended", strconv.Itoa(s.Ended)},
		{"participants", strconv.Itoa(s.TotalParticipants)},
	})
}

func smokeTable(w io.Writer, s smoke.Stats) error {
	return table(w, []any{"Metric", "Value"}, [][]string{
		{"created", strconv.Itoa(s.Created)},
		{"replayed", strconv.Itoa(s.Replayed)},
		{"failed", strconv.Itoa(s.Failed)},
		{"search matches", strconv.Itoa(s.SearchMatches)},
		{"recommendations", strconv.Itoa(s.Recommendations)},
		{"deleted", strconv.Itoa(s.Deleted)},
		{"duration", s.Duration.String()},
	})
}

func table(w io.Writer, header []any, rows [][]string) error {
	t := tablewriter.NewWriter(w)
	t.Header(header...)
	if err := t.Bulk(rows); err != nil {
		return err
	}
	return t.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
