package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"talent-match/internal/domain/matching"
	"talent-match/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	RankedSheet  = "Ranked Candidates"
)

var rankedHeaders = []string{
	"Rank", "Candidate ID", "Overall", "Skill", "Experience", "Salary",
	"Tier", "Matched Skills", "Missing Skills",
}

var tierFill = map[matching.Recommendation]string{
	matching.HighlyRecommended: "C6EFCE",
	matching.Recommended:       "FFEB9C",
	matching.Consider:          "FFC7CE",
	matching.NotRecommended:    "FF9999",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteRanking renders records, already in rank order, as an xlsx workbook.
func WriteRanking(w io.Writer, job repository.Job, records []matching.MatchRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(RankedSheet); err != nil {
		return err
	}

	if err := writeSummary(f, job, records, time.Now().UTC()); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeRanked(f, records); err != nil {
		return fmt.Errorf("ranked sheet: %w", err)
	}

	_, err := f.WriteTo(w)
	return err
}

func writeSummary(f *excelize.File, job repository.Job, records []matching.MatchRecord, now time.Time) error {
	sh := SummarySheet
	if err := f.SetColWidth(sh, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sh, "B", "B", 48); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetCellValue(sh, "A1", "Candidate Ranking"); err != nil {
		return err
	}
	if err := f.MergeCell(sh, "A1", "B1"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sh, "A1", "B1", titleStyle); err != nil {
		return err
	}

	rows := [][2]any{
		{"Job", job.Title},
		{"Job ID", job.ID.String()},
		{"Experience Level", string(job.Snapshot.ExperienceLevel)},
		{"Salary Range", fmt.Sprintf("%d - %d", job.Snapshot.SalaryMin, job.Snapshot.SalaryMax)},
		{"Generated", now.Format(time.RFC3339)},
		{"Candidates Ranked", len(records)},
	}

	counts := make(map[matching.Recommendation]int, len(tierFill))
	var total float64
	for _, r := range records {
		counts[r.Recommendation]++
		total += r.OverallScore
	}
	if len(records) > 0 {
		rows = append(rows,
			[2]any{"Average Score", round2(total / float64(len(records)))},
			[2]any{"Highest Score", records[0].OverallScore},
			[2]any{"Method", records[0].Method},
		)
	}
	for _, tier := range []matching.Recommendation{matching.HighlyRecommended, matching.Recommended, matching.Consider, matching.NotRecommended} {
		rows = append(rows, [2]any{tierLabel(tier), counts[tier]})
	}

	for i, kv := range rows {
		row := i + 3
		a, _ := excelize.CoordinatesToCellName(1, row)
		b, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sh, a, kv[0]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sh, a, a, labelStyle); err != nil {
			return err
		}
		if err := f.SetCellValue(sh, b, kv[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeRanked(f *excelize.File, records []matching.MatchRecord) error {
	sh := RankedSheet
	widths := []float64{8, 38, 10, 10, 12, 10, 20, 40, 40}
	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sh, col, col, wd); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sh, "A1", &rankedHeaders); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(rankedHeaders))
	if err := f.SetCellStyle(sh, "A1", last+"1", headerStyle); err != nil {
		return err
	}

	styles := make(map[matching.Recommendation]int, len(tierFill))
	for tier, color := range tierFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return err
		}
		styles[tier] = id
	}

	for i, r := range records {
		row := i + 2
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(rankedHeaders), row)

		values := []any{
			i + 1,
			r.CandidateID.String(),
			r.OverallScore,
			componentValue(r, matching.ComponentSkill, r.Components.Skill),
			r.Components.Experience,
			componentValue(r, matching.ComponentSalary, r.Components.Salary),
			tierLabel(r.Recommendation),
			strings.Join(r.MatchedSkills, ", "),
			strings.Join(r.MissingSkills, ", "),
		}
		if err := f.SetSheetRow(sh, start, &values); err != nil {
			return err
		}
		if style, ok := styles[r.Recommendation]; ok {
			if err := f.SetCellStyle(sh, start, end, style); err != nil {
				return err
			}
		}
	}

	if len(records) > 0 {
		if err := f.AutoFilter(sh, fmt.Sprintf("A1:%s%d", last, len(records)+1), nil); err != nil {
			return err
		}
	}
	return f.SetPanes(sh, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// componentValue leaves excluded components blank rather than showing 0.
func componentValue(r matching.MatchRecord, c matching.Component, v float64) any {
	if r.IsExcluded(c) {
		return ""
	}
	return v
}

func tierLabel(r matching.Recommendation) string {
	switch r {
	case matching.HighlyRecommended:
		return "Highly recommended"
	case matching.Recommended:
		return "Recommended"
	case matching.Consider:
		return "Consider"
	case matching.NotRecommended:
		return "Not recommended"
	}
	return string(r)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
