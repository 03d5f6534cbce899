package search

// Synonyms maps a normalized career term to alternative titles used in the
// catalog.
var Synonyms = map[string][]string{
	"programmer":    {"software developer", "software engineer", "developer"},
	"doctor":        {"physician", "medical doctor", "surgeon"},
	"teacher":       {"educator", "instructor", "lecturer"},
	"lawyer":        {"attorney", "legal counsel"},
	"nurse":         {"registered nurse", "nursing"},
	"accountant":    {"auditor", "bookkeeper"},
	"designer":      {"graphic designer", "ui designer", "visual designer"},
	"social worker": {"counselor", "case manager"},
	"mechanic":      {"technician", "automotive technician"},
	"data analyst":  {"data scientist", "business analyst"},
	"sales":         {"sales representative", "account manager"},
}

func GetSynonyms(term string) []string {
	v, ok := Synonyms[term]
	if !ok {
		return []string{}
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}
