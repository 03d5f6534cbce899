package recommendation

import (
	"fmt"
	"testing"

	"career-guidance/internal/domain/career"
	"career-guidance/internal/domain/riasec"

	"github.com/stretchr/testify/assert"
)

func cats(cs ...riasec.Category) []riasec.Category { return cs }

func TestTopCategories_TieKeepsCanonicalOrder(t *testing.T) {
	scores := riasec.ScoreVector{riasec.Investigative: 50, riasec.Realistic: 50, riasec.Artistic: 30}.Complete()

	assert.Equal(t, cats(riasec.Realistic, riasec.Investigative, riasec.Artistic), TopCategories(scores, 3))
}

func TestTopCategories_AllZeroFallsBackToCanonicalOrder(t *testing.T) {
	assert.Equal(t, cats(riasec.Realistic, riasec.Investigative, riasec.Artistic), TopCategories(riasec.NewScoreVector(), 3))
	assert.Len(t, TopCategories(riasec.NewScoreVector(), 10), 6)
	assert.Empty(t, TopCategories(riasec.NewScoreVector(), -1))
}

func TestRecommend_FiltersScoresAndSorts(t *testing.T) {
	scores := riasec.ScoreVector{
		riasec.Realistic:     20,
		riasec.Investigative: 60,
		riasec.Artistic:      10,
		riasec.Social:        40,
		riasec.Enterprising:  5,
		riasec.Conventional:  30,
	}
	// top three: I(60), S(40), C(30)
	catalog := []career.Career{
		{ID: "painter", Title: "Painter", Categories: cats(riasec.Artistic)},
		{ID: "nurse", Title: "Nurse", Categories: cats(riasec.Social, riasec.Investigative)},
		{ID: "accountant", Title: "Accountant", Categories: cats(riasec.Conventional)},
		{ID: "engineer", Title: "Engineer", Categories: cats(riasec.Realistic, riasec.Investigative)},
	}

	got := Recommend(scores, catalog, 5)

	assert.Equal(t, []Entry{
		{CareerID: "nurse", Title: "Nurse", MatchScore: 100},
		{CareerID: "engineer", Title: "Engineer", MatchScore: 80},
		{CareerID: "accountant", Title: "Accountant", MatchScore: 30},
	}, got)
}

func TestRecommend_CapsCandidatesInCatalogOrderBeforeScoring(t *testing.T) {
	scores := riasec.ScoreVector{riasec.Realistic: 50, riasec.Investigative: 40, riasec.Artistic: 30}.Complete()

	catalog := []career.Career{
		{ID: "a", Title: "A", Categories: cats(riasec.Artistic)},
		{ID: "b", Title: "B", Categories: cats(riasec.Artistic)},
		{ID: "c", Title: "C", Categories: cats(riasec.Realistic, riasec.Investigative)},
	}

	got := Recommend(scores, catalog, 2)

	assert.Equal(t, []Entry{
		{CareerID: "a", Title: "A", MatchScore: 30},
		{CareerID: "b", Title: "B", MatchScore: 30},
	}, got, "c is past the cap even though it would score highest")
}

func TestRecommend_StableForEqualScores(t *testing.T) {
	scores := riasec.ScoreVector{riasec.Social: 70}.Complete()
	catalog := []career.Career{
		{ID: "x", Title: "X", Categories: cats(riasec.Social)},
		{ID: "y", Title: "Y", Categories: cats(riasec.Social)},
		{ID: "z", Title: "Z", Categories: cats(riasec.Social, riasec.Realistic)},
	}

	got := Recommend(scores, catalog, 5)
	assert.Equal(t, []string{"x", "y", "z"}, ids(got))
	assert.Equal(t, got, Recommend(scores, catalog, 5))
}

func TestRecommend_CountsCategoriesOutsideTopThree(t *testing.T) {
	scores := riasec.ScoreVector{
		riasec.Realistic:     90,
		riasec.Investigative: 80,
		riasec.Artistic:      70,
		riasec.Social:        60,
	}.Complete()
	catalog := []career.Career{
		{ID: "teacher", Title: "Teacher", Categories: cats(riasec.Artistic, riasec.Social, riasec.Social)},
	}

	got := Recommend(scores, catalog, 5)
	assert.Equal(t, 130, got[0].MatchScore)
}

func TestRecommend_LengthBounds(t *testing.T) {
	scores := riasec.ScoreVector{riasec.Enterprising: 80, riasec.Conventional: 60, riasec.Social: 40}.Complete()

	var catalog []career.Career
	for i := 0; i < 12; i++ {
		catalog = append(catalog, career.Career{ID: fmt.Sprintf("e%d", i), Title: "E", Categories: cats(riasec.Enterprising)})
	}
	catalog = append(catalog, career.Career{ID: "none", Title: "None"})

	assert.Len(t, Recommend(scores, catalog, 0), DefaultLimit)
	assert.Len(t, Recommend(scores, catalog, 3), 3)
	assert.Len(t, Recommend(scores, catalog[:2], 5), 2)
	assert.Empty(t, Recommend(scores, []career.Career{{ID: "r", Categories: cats(riasec.Realistic)}}, 5))
	assert.Empty(t, Recommend(scores, nil, 5))
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.CareerID)
	}
	return out
}
