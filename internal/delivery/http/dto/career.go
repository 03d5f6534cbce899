package dto

import "career-guidance/internal/domain/career"

type CareerResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Categories  []string `json:"categories"`
	Description string   `json:"description"`
	Education   string   `json:"education"`
	SalaryRange string   `json:"salary_range"`
	Outlook     string   `json:"outlook"`
}

func NewCareerResponses(cs []career.Career) []CareerResponse {
	out := make([]CareerResponse, 0, len(cs))
	for _, c := range cs {
		cats := make([]string, 0, len(c.Categories))
		for _, cat := range c.Categories {
			cats = append(cats, string(cat))
		}
		out = append(out, CareerResponse{
			ID:          c.ID,
			Title:       c.Title,
			Categories:  cats,
			Description: c.Description,
			Education:   c.Education,
			SalaryRange: c.SalaryRange,
			Outlook:     c.Outlook,
		})
	}
	return out
}
