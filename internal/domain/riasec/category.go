package riasec

import (
	"fmt"
	"strings"
)

type Category string

const (
	Realistic     Category = "R"
	Investigative Category = "I"
	Artistic      Category = "A"
	Social        Category = "S"
	Enterprising  Category = "E"
	Conventional  Category = "C"
)

// Categories is the canonical order. Ranking ties are broken by position in this slice.
var Categories = []Category{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

var names = map[Category]string{
	Realistic:     "Realistic",
	Investigative: "Investigative",
	Artistic:      "Artistic",
	Social:        "Social",
	Enterprising:  "Enterprising",
	Conventional:  "Conventional",
}

func (c Category) Valid() bool {
	_, ok := names[c]
	return ok
}

func (c Category) Name() string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}

func (c Category) Index() int {
	for i, it := range Categories {
		if it == c {
			return i
		}
	}
	return -1
}

// Parse accepts either the symbol ("R") or the full name ("realistic").
func Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty category")
	}
	c := Category(strings.ToUpper(s))
	if c.Valid() {
		return c, nil
	}
	for k, n := range names {
		if strings.EqualFold(n, s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type ScoreVector map[Category]int

// NewScoreVector returns a vector with every category present and set to zero.
func NewScoreVector() ScoreVector {
	v := make(ScoreVector, len(Categories))
	for _, c := range Categories {
		v[c] = 0
	}
	return v
}

func (v ScoreVector) Get(c Category) int {
	if v == nil {
		return 0
	}
	return v[c]
}

// Complete fills any missing category with zero and drops unknown keys.
func (v ScoreVector) Complete() ScoreVector {
	out := NewScoreVector()
	for _, c := range Categories {
		out[c] = v.Get(c)
	}
	return out
}

func (v ScoreVector) Clone() ScoreVector {
	return v.Complete()
}
