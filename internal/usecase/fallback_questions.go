package usecase

import (
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/riasec"
)

var likertOptions = []assessment.Option{
	{Value: 1, Label: "Strongly dislike"},
	{Value: 2, Label: "Dislike"},
	{Value: 3, Label: "Neutral"},
	{Value: 4, Label: "Like"},
	{Value: 5, Label: "Strongly like"},
}

var fallbackPrompts = map[riasec.Category]string{
	riasec.Realistic:     "Repair a machine or build something with tools",
	riasec.Investigative: "Study how something works and solve a hard problem",
	riasec.Artistic:      "Write, draw, compose or design something original",
	riasec.Social:        "Teach, help or care for other people",
	riasec.Enterprising:  "Lead a team or persuade others to back an idea",
	riasec.Conventional:  "Organize records and keep data accurate",
}

// FallbackQuestions is the fixed catalog served when the remote catalog is
// unreachable or empty: one question per category in canonical order.
func FallbackQuestions(assessmentType string) []assessment.Question {
	out := make([]assessment.Question, 0, len(riasec.Categories))
	for i, c := range riasec.Categories {
		opts := make([]assessment.Option, len(likertOptions))
		copy(opts, likertOptions)
		out = append(out, assessment.Question{
			ID:       assessmentType + "-fallback-" + string(c),
			Prompt:   fallbackPrompts[c],
			Category: c,
			Order:    i + 1,
			Options:  opts,
		})
	}
	return out
}
