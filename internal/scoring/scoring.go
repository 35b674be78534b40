package scoring

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/interviewmate/backend/internal/models"
)

// ErrNoTrendData is returned when no scored attempt matches the requested job
// title. A missing series is distinct from an empty-but-successful one.
var ErrNoTrendData = errors.New("no scored attempts for this job title")

// Point is one chart entry: a short date label and the attempt's overall score.
type Point struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Trend is the chronological score series for one job title.
type Trend struct {
	JobTitle string  `json:"job_title"`
	Points   []Point `json:"points"`
	Average  float64 `json:"average"`
}

// AttemptAverage recomputes an attempt's display score: the mean of
// (relevance+grammar)/2 across its answer records, rounded to one decimal.
// An attempt with no answers scores 0. This is independent of the stored
// overall score, which is the evaluator's own judgment.
func AttemptAverage(records []models.AnswerRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += (r.RelevanceScore + r.GrammarScore) / 2
	}
	return round1(sum / float64(len(records)))
}

// TrendSeries builds the score-over-time series for jobTitle from the given
// interviews. Matching is exact (case-sensitive); attempts without an overall
// score are dropped; points are ordered by attempt creation time. The average
// is the unweighted mean of the included overall scores.
func TrendSeries(interviews []models.Interview, jobTitle string) (*Trend, error) {
	type scored struct {
		at    time.Time
		score float64
	}

	var all []scored
	for _, iv := range interviews {
		if iv.JobTitle != jobTitle {
			continue
		}
		for _, a := range iv.Attempts {
			if a.OverallScore == nil {
				continue
			}
			all = append(all, scored{at: a.CreatedAt, score: *a.OverallScore})
		}
	}
	if len(all) == 0 {
		return nil, ErrNoTrendData
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })

	trend := &Trend{
		JobTitle: jobTitle,
		Points:   make([]Point, len(all)),
	}
	var sum float64
	for i, s := range all {
		trend.Points[i] = Point{Label: s.at.Format("2 Jan"), Score: s.score}
		sum += s.score
	}
	trend.Average = round1(sum / float64(len(all)))

	return trend, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
