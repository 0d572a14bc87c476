package session

import (
	"fmt"
	"time"

	"github.com/abhisek/cogtests/internal/question"
)

// Summary holds the figures reported when a session ends.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Kinds          []KindProgress
}

// BuildSummary tallies the session's questions per kind, in the order each
// kind was first asked. Menu selections are not counted.
func BuildSummary(s *Session) *Summary {
	sum := &Summary{Duration: s.Duration()}
	index := make(map[string]int)
	for _, in := range s.Interactions {
		if in.Question == nil {
			continue
		}
		kind := in.Question.Kind()
		i, ok := index[kind]
		if !ok {
			i = len(sum.Kinds)
			index[kind] = i
			sum.Kinds = append(sum.Kinds, KindProgress{Kind: kind})
		}
		sum.Kinds[i].Record(in)
		sum.TotalQuestions++
		if in.Status == question.StatusCorrect {
			sum.TotalCorrect++
		}
	}
	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalQuestions)
	}
	return sum
}

// RenderTime formats a duration as "12.3 seconds" under a minute, "m:ss"
// under an hour and "h:mm:ss" beyond.
func RenderTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1f seconds", d.Seconds())
	}
	secs := int(d / time.Second)
	if secs < 3600 {
		return fmt.Sprintf("%d:%02d", secs/60, secs%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}
