package assessment

import (
	"time"

	"career-guidance/internal/domain/recommendation"
	"career-guidance/internal/domain/riasec"

	"github.com/google/uuid"
)

const (
	TypeRIASEC = "riasec"

	MinValue = 1
	MaxValue = 5
)

type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type Question struct {
	ID       string          `json:"id"`
	Prompt   string          `json:"prompt"`
	Category riasec.Category `json:"category"`
	Order    int             `json:"order"`
	Options  []Option        `json:"options"`
}

func (q Question) HasOption(value int) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// AnswerMap maps question id to the selected option value.
type AnswerMap map[string]int

func (a AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func (a AnswerMap) Total() int {
	total := 0
	for _, v := range a {
		total += v
	}
	return total
}

type SessionState struct {
	AssessmentType string    `json:"assessment_type"`
	Index          int       `json:"index"`
	Answers        AnswerMap `json:"answers"`
	Completed      bool      `json:"completed"`
	Total          int       `json:"total"`
}

type Result struct {
	ID              uuid.UUID              `json:"id"`
	UserID          string                 `json:"user_id"`
	AssessmentType  string                 `json:"assessment_type"`
	Scores          riasec.ScoreVector     `json:"scores"`
	Answers         AnswerMap              `json:"answers"`
	TotalScore      int                    `json:"total_score"`
	Recommendations []recommendation.Entry `json:"recommendations"`
	CompletedAt     time.Time              `json:"completed_at"`
}

type HistoryEntry struct {
	ResultID   uuid.UUID `json:"result_id"`
	AppendedAt time.Time `json:"appended_at"`
}
