package bleve

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Term is one operand of a websearch query
type Term struct {
	Text   string
	Phrase bool
	Negate bool
}

// Group is a run of terms that must all hold
type Group []Term

// ParseWebsearch splits q into OR-separated groups of AND-ed terms.
//
// Quoted text is a phrase, a leading '-' negates the next word or phrase
// and a bare "or" (any case) starts a new group. Unterminated quotes run
// to the end of the input. Nothing is ever rejected.
func ParseWebsearch(q string) []Group {
	var (
		groups  []Group
		current Group
	)

	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
		}
		current = nil
	}

	runes := []rune(q)
	for i := 0; i < len(runes); {
		r := runes[i]

		if unicode.IsSpace(r) {
			i++
			continue
		}

		negate := false
		if r == '-' {
			negate = true
			i++
			if i >= len(runes) || unicode.IsSpace(runes[i]) {
				continue
			}
			r = runes[i]
		}

		if r == '"' {
			i++
			start := i
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			text := strings.TrimSpace(string(runes[start:i]))
			if i < len(runes) {
				i++
			}
			if text != "" {
				current = append(current, Term{Text: text, Phrase: true, Negate: negate})
			}
			continue
		}

		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '"' {
			i++
		}
		word := string(runes[start:i])

		if !negate && strings.EqualFold(word, "or") {
			flush()
			continue
		}
		current = append(current, Term{Text: word, Negate: negate})
	}
	flush()

	return groups
}

// compile turns parsed groups into a bleve query. Terms that analyze to
// nothing (stop words, punctuation) are dropped. A nil result matches
// nothing.
func (s *Store) compile(groups []Group) query.Query {
	var (
		alternatives []query.Query
		boosts       []query.Query
	)

	for _, g := range groups {
		var must, mustNot []query.Query
		for _, t := range g {
			if !s.analyzable(t.Text) {
				continue
			}
			if t.Negate {
				mustNot = append(mustNot, termQuery(t, fieldText, 1))
				continue
			}
			must = append(must, termQuery(t, fieldText, 1))
			boosts = append(boosts,
				termQuery(t, fieldA, boostA),
				termQuery(t, fieldB, boostB),
				termQuery(t, fieldC, boostC),
			)
		}

		if len(must) == 0 && len(mustNot) == 0 {
			continue
		}
		if len(must) == 0 {
			must = append(must, bleve.NewMatchAllQuery())
		}
		alternatives = append(alternatives, query.NewBooleanQuery(must, nil, mustNot))
	}

	var match query.Query
	switch len(alternatives) {
	case 0:
		return nil
	case 1:
		match = alternatives[0]
	default:
		match = bleve.NewDisjunctionQuery(alternatives...)
	}

	if len(boosts) == 0 {
		return match
	}
	return query.NewBooleanQuery([]query.Query{match}, boosts, nil)
}

func (s *Store) analyzable(text string) bool {
	analyzer := s.index.Mapping().AnalyzerNamed(analyzerName)
	if analyzer == nil {
		return strings.TrimSpace(text) != ""
	}
	return len(analyzer.Analyze([]byte(text))) > 0
}

func termQuery(t Term, field string, boost float64) query.Query {
	if t.Phrase {
		q := bleve.NewMatchPhraseQuery(t.Text)
		q.SetField(field)
		q.SetBoost(boost)
		return q
	}

	q := bleve.NewMatchQuery(t.Text)
	q.SetField(field)
	q.SetBoost(boost)
	q.SetOperator(query.MatchQueryOperatorAnd)
	return q
}
