package career

import (
	"time"

	"career-guidance/internal/domain/riasec"
)

type Career struct {
	ID          string
	Title       string
	Categories  []riasec.Category
	Description string
	Education   string
	SalaryRange string
	Outlook     string
	CreatedAt   time.Time
}

func (c Career) HasAny(cats []riasec.Category) bool {
	for _, have := range c.Categories {
		for _, want := range cats {
			if have == want {
				return true
			}
		}
	}
	return false
}
