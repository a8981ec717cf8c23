package session

import "math"

type Grade string

const (
	GradeExcellent  Grade = "excellent"
	GradeGood       Grade = "good"
	GradeKeepTrying Grade = "keep_trying"
)

type Report struct {
	Score      int   `json:"score"`
	Total      int   `json:"total"`
	Percentage int   `json:"percentage"`
	Grade      Grade `json:"grade"`
}

// newReport expects total > 0; sessions cannot start on an empty set.
func newReport(score, total int) Report {
	pct := int(math.Round(100 * float64(score) / float64(total)))
	g := GradeKeepTrying
	switch {
	case pct >= 80:
		g = GradeExcellent
	case pct >= 60:
		g = GradeGood
	}
	return Report{Score: score, Total: total, Percentage: pct, Grade: g}
}
