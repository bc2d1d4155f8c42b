package mcp

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSchemasCompile(t *testing.T) {
	for _, tool := range Tools() {
		if _, err := NewSchemaValidator(tool.Name, tool.InputSchema); err != nil {
			t.Errorf("schema for %s: %v", tool.Name, err)
		}
	}
}

func TestValidateReportsField(t *testing.T) {
	v, err := NewSchemaValidator("t", map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"limit": map[string]interface{}{"type": "integer", "minimum": 1},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := v.Validate(map[string]interface{}{"limit": json.Number("3")}); err != nil {
		t.Errorf("Validate(valid) error = %v", err)
	}

	err = v.Validate(map[string]interface{}{"limit": json.Number("0")})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if ve.Field != "/limit" {
		t.Errorf("Field = %q, want /limit", ve.Field)
	}

	rpcErr := ErrorFromValidation(err)
	if rpcErr.Code != InvalidParams {
		t.Errorf("Code = %d, want %d", rpcErr.Code, InvalidParams)
	}
}

func TestDecodeArguments(t *testing.T) {
	for _, raw := range []string{"", "null", " {} "} {
		args, err := decodeArguments(json.RawMessage(raw))
		if err != nil || len(args) != 0 {
			t.Errorf("decodeArguments(%q) = %v, %v", raw, args, err)
		}
	}

	args, err := decodeArguments(json.RawMessage(`{"limit":5}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := args["limit"].(json.Number); !ok {
		t.Errorf("limit type = %T, want json.Number", args["limit"])
	}
	if got := argInt(args, "limit", 100); got != 5 {
		t.Errorf("argInt() = %d, want 5", got)
	}
}

func TestArgIntAcceptsIntegralFloat(t *testing.T) {
	args, err := decodeArguments(json.RawMessage(`{"limit":5.0,"bad":"x"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := argInt(args, "limit", 100); got != 5 {
		t.Errorf("argInt(5.0) = %d, want 5", got)
	}
	if got := argInt(args, "bad", 100); got != 100 {
		t.Errorf("argInt(bad) = %d, want default 100", got)
	}
	if got := argInt(args, "missing", 100); got != 100 {
		t.Errorf("argInt(missing) = %d, want default 100", got)
	}
}
