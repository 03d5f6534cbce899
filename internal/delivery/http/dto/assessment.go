package dto

import (
	"time"

	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/recommendation"
	"career-guidance/internal/domain/riasec"

	"github.com/google/uuid"
)

type OptionResponse struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type QuestionResponse struct {
	ID           string           `json:"id"`
	Prompt       string           `json:"prompt"`
	Category     string           `json:"category"`
	CategoryName string           `json:"category_name"`
	Order        int              `json:"order"`
	Options      []OptionResponse `json:"options"`
}

type SessionResponse struct {
	AssessmentType string         `json:"assessment_type"`
	Index          int            `json:"index"`
	Total          int            `json:"total"`
	Completed      bool           `json:"completed"`
	Answers        map[string]int `json:"answers"`
}

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      int    `json:"value"`
}

type SubmitRequest struct {
	Answers map[string]int `json:"answers"`
}

type CategoryScore struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

type ResultResponse struct {
	ID              uuid.UUID              `json:"id"`
	UserID          string                 `json:"user_id"`
	AssessmentType  string                 `json:"assessment_type"`
	Scores          []CategoryScore        `json:"scores"`
	TopCategories   []string               `json:"top_categories"`
	Answers         map[string]int         `json:"answers"`
	TotalScore      int                    `json:"total_score"`
	Recommendations []recommendation.Entry `json:"recommendations"`
	CompletedAt     string                 `json:"completed_at"`
}

func NewQuestionResponses(qs []assessment.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(qs))
	for _, q := range qs {
		opts := make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, OptionResponse{Value: o.Value, Label: o.Label})
		}
		out = append(out, QuestionResponse{
			ID:           q.ID,
			Prompt:       q.Prompt,
			Category:     string(q.Category),
			CategoryName: q.Category.Name(),
			Order:        q.Order,
			Options:      opts,
		})
	}
	return out
}

func NewSessionResponse(s assessment.SessionState) SessionResponse {
	answers := map[string]int(s.Answers)
	if answers == nil {
		answers = map[string]int{}
	}
	return SessionResponse{
		AssessmentType: s.AssessmentType,
		Index:          s.Index,
		Total:          s.Total,
		Completed:      s.Completed,
		Answers:        answers,
	}
}

// NewResultResponse lists scores in canonical category order.
func NewResultResponse(r assessment.Result) ResultResponse {
	scores := make([]CategoryScore, 0, len(riasec.Categories))
	for _, c := range riasec.Categories {
		scores = append(scores, CategoryScore{Category: string(c), Name: c.Name(), Score: r.Scores.Get(c)})
	}
	top := make([]string, 0, recommendation.TopCategoryN)
	for _, c := range recommendation.TopCategories(r.Scores, recommendation.TopCategoryN) {
		top = append(top, string(c))
	}
	recs := r.Recommendations
	if recs == nil {
		recs = []recommendation.Entry{}
	}
	return ResultResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		AssessmentType:  r.AssessmentType,
		Scores:          scores,
		TopCategories:   top,
		Answers:         map[string]int(r.Answers),
		TotalScore:      r.TotalScore,
		Recommendations: recs,
		CompletedAt:     r.CompletedAt.UTC().Format(time.RFC3339),
	}
}
