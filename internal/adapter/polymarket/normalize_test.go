package polymarket

import (
	"encoding/json"
	"math"
	"testing"

	"PolymarketMCP/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func assertTokens(t *testing.T, got []model.Token, want []model.Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(tokens) = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i].TokenID != want[i].TokenID {
			t.Errorf("tokens[%d].TokenID = %q, want %q", i, got[i].TokenID, want[i].TokenID)
		}
		if got[i].Outcome != want[i].Outcome {
			t.Errorf("tokens[%d].Outcome = %q, want %q", i, got[i].Outcome, want[i].Outcome)
		}
		switch {
		case want[i].Price == nil && got[i].Price != nil:
			t.Errorf("tokens[%d].Price = %v, want nil", i, *got[i].Price)
		case want[i].Price != nil && got[i].Price == nil:
			t.Errorf("tokens[%d].Price = nil, want %v", i, *want[i].Price)
		case want[i].Price != nil && *got[i].Price != *want[i].Price:
			t.Errorf("tokens[%d].Price = %v, want %v", i, *got[i].Price, *want[i].Price)
		}
	}
}

func TestNormalizeMarketExample(t *testing.T) {
	raw := model.RawMarket{
		"clobTokenIds":  `["t1","t2"]`,
		"outcomes":      `["Yes","No"]`,
		"outcomePrices": `["0.65","0.35"]`,
		"question":      "Will X happen?",
	}

	m := NormalizeMarket(raw, "")

	assertTokens(t, m.Tokens, []model.Token{
		{TokenID: "t1", Outcome: "Yes", Price: floatPtr(0.65)},
		{TokenID: "t2", Outcome: "No", Price: floatPtr(0.35)},
	})
	if m.Title != "Will X happen?" {
		t.Errorf("Title = %q, want %q", m.Title, "Will X happen?")
	}
	if m.Degraded {
		t.Error("Degraded = true, want false")
	}
}

func TestNormalizeMarketMissingFields(t *testing.T) {
	m := NormalizeMarket(model.RawMarket{"question": "Q"}, "")

	if m.Tokens == nil || len(m.Tokens) != 0 {
		t.Errorf("Tokens = %#v, want empty non-nil slice", m.Tokens)
	}
	if m.Degraded {
		t.Error("missing fields are not a parse failure")
	}

	// 完全空的记录也不应 panic
	empty := NormalizeMarket(nil, "")
	if len(empty.Tokens) != 0 {
		t.Errorf("Tokens = %v, want empty", empty.Tokens)
	}
}

func TestNormalizeMarketMismatchedLengths(t *testing.T) {
	raw := model.RawMarket{
		"clobTokenIds":  `["t1","t2","t3"]`,
		"outcomes":      `["Yes"]`,
		"outcomePrices": `["0.4","0.6"]`,
	}

	m := NormalizeMarket(raw, "")

	assertTokens(t, m.Tokens, []model.Token{
		{TokenID: "t1", Outcome: "Yes", Price: floatPtr(0.4)},
		{TokenID: "t2", Outcome: "Unknown", Price: floatPtr(0.6)},
		{TokenID: "t3", Outcome: "Unknown", Price: nil},
	})
}

func TestNormalizeMarketNonNumericPrice(t *testing.T) {
	raw := model.RawMarket{
		"clobTokenIds":  `["t1","t2"]`,
		"outcomes":      `["Yes","No"]`,
		"outcomePrices": `["n/a", 0.2]`,
	}

	m := NormalizeMarket(raw, "")

	assertTokens(t, m.Tokens, []model.Token{
		{TokenID: "t1", Outcome: "Yes", Price: nil},
		{TokenID: "t2", Outcome: "No", Price: floatPtr(0.2)},
	})
}

func TestNormalizeMarketNonFinitePrice(t *testing.T) {
	raw := model.RawMarket{
		"clobTokenIds":  `["t1","t2","t3","t4"]`,
		"outcomes":      `["A","B","C","D"]`,
		"outcomePrices": `["NaN","Inf","-infinity","0.4"]`,
	}

	m := NormalizeMarket(raw, "")

	assertTokens(t, m.Tokens, []model.Token{
		{TokenID: "t1", Outcome: "A", Price: nil},
		{TokenID: "t2", Outcome: "B", Price: nil},
		{TokenID: "t3", Outcome: "C", Price: nil},
		{TokenID: "t4", Outcome: "D", Price: floatPtr(0.4)},
	})
	if _, err := json.Marshal(m); err != nil {
		t.Errorf("json.Marshal() error = %v", err)
	}
}

func TestParsePriceRejectsNonFinite(t *testing.T) {
	for _, v := range []interface{}{"NaN", "Inf", "+Inf", "infinity", "-Infinity", json.Number("NaN"), math.Inf(1), math.NaN()} {
		if f, ok := parsePrice(v); ok {
			t.Errorf("parsePrice(%v) = %v, true; want false", v, f)
		}
	}
	if f, ok := parsePrice(json.Number("0.25")); !ok || f != 0.25 {
		t.Errorf("parsePrice(0.25) = %v, %v", f, ok)
	}
}

func TestNormalizeMarketMalformedTokenIDs(t *testing.T) {
	raw := model.RawMarket{
		"id":            "42",
		"clobTokenIds":  `["t1",`,
		"outcomes":      `["Yes","No"]`,
		"outcomePrices": `["0.5","0.5"]`,
		"question":      "Will it rain?",
		"slug":          "will-it-rain",
		"active":        true,
		"closed":        false,
	}

	m := NormalizeMarket(raw, "")

	if len(m.Tokens) != 0 {
		t.Errorf("Tokens = %v, want empty", m.Tokens)
	}
	if !m.Degraded {
		t.Error("Degraded = false, want true")
	}
	if m.ID != "42" || m.Slug != "will-it-rain" || !m.Active || m.Closed {
		t.Errorf("other fields not populated: %+v", m)
	}
	if m.Title != "Will it rain?" {
		t.Errorf("Title = %q, want question", m.Title)
	}
}

func TestNormalizeMarketMalformedPricesDropsAll(t *testing.T) {
	raw := model.RawMarket{
		"clobTokenIds":  `["t1","t2"]`,
		"outcomes":      `["Yes","No"]`,
		"outcomePrices": `not a list`,
	}

	m := NormalizeMarket(raw, "")
	if len(m.Tokens) != 0 {
		t.Errorf("Tokens = %v, want empty when any list fails to parse", m.Tokens)
	}
}

func TestNormalizeMarketSingleQuotedLists(t *testing.T) {
	raw := model.RawMarket{
		"clobTokenIds":  `['t1', 't2']`,
		"outcomes":      `['Yes', 'No']`,
		"outcomePrices": `['0.1', '0.9']`,
	}

	m := NormalizeMarket(raw, "")

	assertTokens(t, m.Tokens, []model.Token{
		{TokenID: "t1", Outcome: "Yes", Price: floatPtr(0.1)},
		{TokenID: "t2", Outcome: "No", Price: floatPtr(0.9)},
	})
}

func TestNormalizeMarketDecodedArrays(t *testing.T) {
	var raw model.RawMarket
	body := `{"clobTokenIds":["t1"],"outcomes":["Yes"],"outcomePrices":[0.3],"id":123456789012}`
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatal(err)
	}

	m := NormalizeMarket(raw, "")

	assertTokens(t, m.Tokens, []model.Token{{TokenID: "t1", Outcome: "Yes", Price: floatPtr(0.3)}})
	if m.ID != "123456789012" {
		t.Errorf("ID = %q, want 123456789012", m.ID)
	}
}

func TestResolveTitlePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		raw        model.RawMarket
		eventTitle string
		want       string
	}{
		{
			name:       "injected event title wins",
			raw:        model.RawMarket{"question": "Q?", "events": []interface{}{map[string]interface{}{"title": "Nested"}}},
			eventTitle: "Event",
			want:       "Event",
		},
		{
			name: "first related event",
			raw:  model.RawMarket{"question": "Q?", "events": []interface{}{map[string]interface{}{"title": "Nested"}}},
			want: "Nested",
		},
		{
			name: "event without title falls back to question",
			raw:  model.RawMarket{"question": "Q?", "events": []interface{}{map[string]interface{}{}}},
			want: "Q?",
		},
		{
			name: "question only",
			raw:  model.RawMarket{"question": "Q?"},
			want: "Q?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMarket(tt.raw, tt.eventTitle).Title; got != tt.want {
				t.Errorf("Title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseListSingleQuoteEscapes(t *testing.T) {
	got, err := parseStringList(`['it\'s', 'say "hi"']`)
	if err != nil {
		t.Fatalf("parseStringList() error = %v", err)
	}
	want := []string{"it's", `say "hi"`}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
