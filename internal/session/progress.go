package session

import (
	"time"

	"github.com/abhisek/cogtests/internal/question"
)

// KindProgress tracks one question kind within a session.
type KindProgress struct {
	Kind      string
	Attempted int
	Correct   int
	GaveUp    int
	Time      time.Duration
	Accuracy  float64 // Correct / Attempted (computed)
}

// Record adds a resolved interaction to the progress.
func (kp *KindProgress) Record(in *question.Interaction) {
	kp.Attempted++
	switch in.Status {
	case question.StatusCorrect:
		kp.Correct++
	case question.StatusGiveUp:
		kp.GaveUp++
	}
	kp.Time += in.Duration()
	if kp.Attempted > 0 {
		kp.Accuracy = float64(kp.Correct) / float64(kp.Attempted)
	}
}

// MeanTime is the average time per question.
func (kp *KindProgress) MeanTime() time.Duration {
	if kp.Attempted == 0 {
		return 0
	}
	return kp.Time / time.Duration(kp.Attempted)
}
