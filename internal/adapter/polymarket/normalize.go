package polymarket

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"PolymarketMCP/internal/model"
)

const unknownOutcome = "Unknown"

// NormalizeMarket 将一条 Gamma 原始市场记录转换为统一的 Market。
// eventTitle 非空时（来自事件搜索）优先作为标题。
// clobTokenIds/outcomes/outcomePrices 任一解析失败时三者都按空列表处理，tokens 为空且 Degraded=true。
func NormalizeMarket(raw model.RawMarket, eventTitle string) model.Market {
	tokenIDs, outcomes, prices, err := parseTokenFields(raw)

	m := model.Market{
		ID:          stringField(raw, "id"),
		ConditionID: stringField(raw, "conditionId"),
		Question:    stringField(raw, "question"),
		Description: stringField(raw, "description"),
		Slug:        stringField(raw, "slug"),
		Active:      boolField(raw, "active"),
		Closed:      boolField(raw, "closed"),
		Tokens:      make([]model.Token, 0, len(tokenIDs)),
		Degraded:    err != nil,
	}
	m.Title = resolveTitle(raw, eventTitle, m.Question)

	for i, id := range tokenIDs {
		tok := model.Token{TokenID: id, Outcome: unknownOutcome}
		if i < len(outcomes) {
			tok.Outcome = outcomes[i]
		}
		if i < len(prices) {
			if p, ok := parsePrice(prices[i]); ok {
				tok.Price = &p
			}
		}
		m.Tokens = append(m.Tokens, tok)
	}
	return m
}

// parseTokenFields 三个字段要么全部解析成功，要么全部为空
func parseTokenFields(raw model.RawMarket) (tokenIDs, outcomes []string, prices []interface{}, err error) {
	if tokenIDs, err = parseStringList(raw["clobTokenIds"]); err != nil {
		return nil, nil, nil, fmt.Errorf("clobTokenIds: %w", err)
	}
	if outcomes, err = parseStringList(raw["outcomes"]); err != nil {
		return nil, nil, nil, fmt.Errorf("outcomes: %w", err)
	}
	if prices, err = parseList(raw["outcomePrices"]); err != nil {
		return nil, nil, nil, fmt.Errorf("outcomePrices: %w", err)
	}
	return tokenIDs, outcomes, prices, nil
}

func parseStringList(v interface{}) ([]string, error) {
	items, err := parseList(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = toString(item)
	}
	return out, nil
}

// parseList 解析伪JSON数组字符串，如 "[\"a\",\"b\"]" 或 "['a', 'b']"；字段缺失视为空列表
func parseList(v interface{}) ([]interface{}, error) {
	switch val := v.(type) {
	case nil:
		return []interface{}{}, nil
	case []interface{}:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" || s == "null" {
			return []interface{}{}, nil
		}
		res, err := decodeList(s)
		if err == nil {
			return res, nil
		}
		if !strings.Contains(s, "'") {
			return nil, err
		}
		converted, convErr := singleQuotedToJSON(s)
		if convErr != nil {
			return nil, convErr
		}
		return decodeList(converted)
	default:
		return nil, fmt.Errorf("unexpected type %T", v)
	}
}

func decodeList(s string) ([]interface{}, error) {
	var res []interface{}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	if err := dec.Decode(&res); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after list")
	}
	if res == nil {
		return []interface{}{}, nil
	}
	return res, nil
}

// singleQuotedToJSON 把单引号字符串字面量改写为 JSON 双引号字符串
func singleQuotedToJSON(s string) (string, error) {
	var b strings.Builder
	inSingle, inDouble, escaped := false, false, false
	for _, r := range s {
		switch {
		case escaped:
			if inSingle && r == '\'' {
				b.WriteRune('\'')
			} else {
				b.WriteRune('\\')
				b.WriteRune(r)
			}
			escaped = false
		case r == '\\' && (inSingle || inDouble):
			escaped = true
		case inSingle:
			switch r {
			case '\'':
				inSingle = false
				b.WriteRune('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteRune(r)
			}
		case inDouble:
			if r == '"' {
				inDouble = false
			}
			b.WriteRune(r)
		case r == '\'':
			inSingle = true
			b.WriteRune('"')
		case r == '"':
			inDouble = true
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	if inSingle || inDouble || escaped {
		return "", fmt.Errorf("unterminated string literal")
	}
	return b.String(), nil
}

// parsePrice 价格可能是字符串或数字；无法解析或非有限值（NaN/Inf）返回 false
func parsePrice(v interface{}) (float64, bool) {
	var (
		f   float64
		err error
	)
	switch val := v.(type) {
	case json.Number:
		f, err = val.Float64()
	case float64:
		f = val
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// resolveTitle 标题优先级：注入的事件标题 > events[0].title > question
func resolveTitle(raw model.RawMarket, eventTitle, question string) string {
	if eventTitle != "" {
		return eventTitle
	}
	if events, ok := raw["events"].([]interface{}); ok && len(events) > 0 {
		if ev, ok := events[0].(map[string]interface{}); ok {
			if title := toString(ev["title"]); title != "" {
				return title
			}
		}
	}
	return question
}

func stringField(raw model.RawMarket, key string) string {
	return toString(raw[key])
}

func boolField(raw model.RawMarket, key string) bool {
	switch v := raw[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
