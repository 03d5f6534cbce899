package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery folds compatibility forms and accents, lowercases input,
// keeps letters and digits and collapses whitespace. Everything else is
// dropped.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(norm.NFKD.String(input)))
	if input == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns the normalized term followed by synonym variants,
// capped at ten. A leading phrase with synonyms is replaced while the rest
// of the query is kept, so "programmer remote" also yields
// "software developer remote".
func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	// "socialworker" -> "social worker"
	if len(words) >= 1 {
		for k, syns := range Synonyms {
			if !strings.Contains(k, " ") || strings.ReplaceAll(k, " ", "") != words[0] {
				continue
			}
			rest := strings.Join(words[1:], " ")
			add(k + " " + rest)
			for _, syn := range syns {
				add(syn + " " + rest)
			}
			break
		}
	}

	replacePrefix := func(n int) {
		if len(words) < n {
			return
		}
		rest := strings.Join(words[n:], " ")
		for _, syn := range GetSynonyms(strings.Join(words[:n], " ")) {
			add(syn + " " + rest)
		}
	}
	replacePrefix(1)
	replacePrefix(2)

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	qc := QueryContext{Original: input, Normalized: NormalizeQuery(input)}
	qc.Variants = ExpandQuery(qc.Normalized)
	return qc
}

// FallbackFirstWord returns the first word of a normalized query, used to
// widen a search that found too little.
func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

// LikePatterns turns variants into ILIKE patterns with wildcards escaped.
func LikePatterns(variants []string) []string {
	out := make([]string, 0, len(variants))
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	for _, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, "%"+r.Replace(v)+"%")
	}
	return out
}
