package seeder

import (
	"context"
	"fmt"

	"career-guidance/internal/database"
	"career-guidance/internal/domain/assessment"
	"career-guidance/internal/domain/riasec"
	"career-guidance/internal/repository"
)

var likert = []assessment.Option{
	{Value: 1, Label: "Strongly dislike"},
	{Value: 2, Label: "Dislike"},
	{Value: 3, Label: "Neutral"},
	{Value: 4, Label: "Like"},
	{Value: 5, Label: "Strongly like"},
}

var riasecPrompts = map[riasec.Category][]string{
	riasec.Realistic: {
		"Fix a broken appliance or engine",
		"Build furniture or other things with your hands",
		"Work outdoors with plants or animals",
		"Operate heavy equipment or machinery",
	},
	riasec.Investigative: {
		"Run experiments in a laboratory",
		"Analyze data to find the cause of a problem",
		"Read scientific articles for fun",
		"Solve complex math or logic puzzles",
	},
	riasec.Artistic: {
		"Write stories, poems or scripts",
		"Design graphics, clothing or interiors",
		"Play a musical instrument or perform on stage",
		"Photograph or film interesting scenes",
	},
	riasec.Social: {
		"Teach a skill to a group of people",
		"Help someone work through a personal problem",
		"Volunteer for a community organization",
		"Care for people who are sick or injured",
	},
	riasec.Enterprising: {
		"Start and run your own business",
		"Negotiate a deal or contract",
		"Lead a team toward a sales target",
		"Give a speech to persuade an audience",
	},
	riasec.Conventional: {
		"Keep detailed financial records",
		"Organize files and schedules for an office",
		"Check documents for errors",
		"Enter data into spreadsheets accurately",
	},
}

// RIASECQuestions interleaves categories so that consecutive questions
// probe different interests.
func RIASECQuestions() []assessment.Question {
	var out []assessment.Question
	for round := 0; ; round++ {
		added := false
		for _, c := range riasec.Categories {
			prompts := riasecPrompts[c]
			if round >= len(prompts) {
				continue
			}
			opts := make([]assessment.Option, len(likert))
			copy(opts, likert)
			out = append(out, assessment.Question{
				ID:       fmt.Sprintf("%s-%s%d", assessment.TypeRIASEC, c, round+1),
				Prompt:   prompts[round],
				Category: c,
				Order:    len(out) + 1,
				Options:  opts,
			})
			added = true
		}
		if !added {
			return out
		}
	}
}

type QuestionsSeeder struct{}

func (QuestionsSeeder) Name() string { return "questions" }

func (QuestionsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := RequireColumns(ctx, db, "questions", "id", "assessment_type", "prompt", "category", "sort_order", "options"); err != nil {
		return err
	}
	_, err := repository.NewPostgresQuestionRepository(db).Upsert(ctx, assessment.TypeRIASEC, RIASECQuestions())
	return err
}
