package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platinummonkey/advocates/pkg/advocates"
)

func rows(names ...string) []advocates.Advocate {
	out := make([]advocates.Advocate, len(names))
	for i, n := range names {
		out[i] = advocates.Advocate{ID: int64(i + 1), FirstName: n}
	}
	return out
}

func TestReduce_Mounted(t *testing.T) {
	s, eff := Reduce(State{}, Mounted{})

	assert.Equal(t, Effect{Kind: EffectFetch, Query: "", Seq: 1}, eff)
	assert.Equal(t, uint64(1), s.Seq)
}

func TestReduce_QueryChanged(t *testing.T) {
	s, eff := Reduce(State{Seq: 3}, QueryChanged{Text: "card"})

	assert.Equal(t, "card", s.Query)
	assert.Equal(t, uint64(3), s.Seq, "an edit alone issues no fetch")
	assert.Equal(t, Effect{Kind: EffectDebounce, Query: "card"}, eff)
}

func TestReduce_DebounceElapsed(t *testing.T) {
	s := State{Query: "card", Seq: 1}

	next, eff := Reduce(s, DebounceElapsed{Text: "card"})
	assert.Equal(t, Effect{Kind: EffectFetch, Query: "card", Seq: 2}, eff)
	assert.Equal(t, uint64(2), next.Seq)

	// the query moved on before the timer ran
	next, eff = Reduce(s, DebounceElapsed{Text: "car"})
	assert.Equal(t, EffectNone, eff.Kind)
	assert.Equal(t, s, next)
}

func TestReduce_ResetRequested(t *testing.T) {
	s, eff := Reduce(State{Query: "card", Seq: 4}, ResetRequested{})

	assert.Equal(t, "", s.Query)
	assert.Equal(t, Effect{Kind: EffectFetch, Query: "", Seq: 5}, eff)

	// a debounce for the old text is ignored afterwards
	_, eff = Reduce(s, DebounceElapsed{Text: "card"})
	assert.Equal(t, EffectNone, eff.Kind)
}

func TestReduce_ResultsLoaded(t *testing.T) {
	s := State{Seq: 2}

	s, eff := Reduce(s, ResultsLoaded{Seq: 2, Rows: rows("Ann")})
	assert.Equal(t, EffectNone, eff.Kind)
	assert.Equal(t, uint64(2), s.Applied)
	assert.Equal(t, rows("Ann"), s.Rows)

	s, _ = Reduce(s, ResultsLoaded{Seq: 1, Rows: rows("Old")})
	assert.Equal(t, rows("Ann"), s.Rows, "older response must not overwrite")

	s, _ = Reduce(s, ResultsLoaded{Seq: 2, Rows: rows("Dup")})
	assert.Equal(t, rows("Ann"), s.Rows, "repeated response must not overwrite")

	s, _ = Reduce(s, ResultsLoaded{Seq: 3})
	assert.NotNil(t, s.Rows)
	assert.Empty(t, s.Rows)
}

func TestReduce_OutOfOrderResponses(t *testing.T) {
	var s State
	s, first := Reduce(s, Mounted{})
	s, _ = Reduce(s, QueryChanged{Text: "houston"})
	s, second := Reduce(s, DebounceElapsed{Text: "houston"})

	s, _ = Reduce(s, ResultsLoaded{Seq: second.Seq, Rows: rows("Michael")})
	s, _ = Reduce(s, ResultsLoaded{Seq: first.Seq, Rows: rows("Everyone", "Else")})

	assert.Equal(t, "houston", s.Query)
	assert.Equal(t, rows("Michael"), s.Rows)
	assert.Equal(t, second.Seq, s.Applied)
}

func TestReduce_FetchFailed(t *testing.T) {
	s := State{Query: "x", Rows: rows("Ann"), Seq: 2, Applied: 1}

	next, eff := Reduce(s, FetchFailed{Seq: 2, Err: errors.New("boom")})
	assert.Equal(t, s, next)
	assert.Equal(t, EffectNone, eff.Kind)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := State{Rows: rows("Ann")}
	_, _ = Reduce(s, ResultsLoaded{Seq: 1, Rows: rows("Bob")})

	assert.Equal(t, "Ann", s.Rows[0].FirstName)
	assert.Equal(t, uint64(0), s.Applied)
}

func TestEffectKind_String(t *testing.T) {
	assert.Equal(t, "none", EffectNone.String())
	assert.Equal(t, "debounce", EffectDebounce.String())
	assert.Equal(t, "fetch", EffectFetch.String())
	assert.Equal(t, "unknown", EffectKind(9).String())
}
