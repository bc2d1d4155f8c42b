package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator 已编译的工具参数 JSON Schema
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator 编译 schema（Draft 7）
func NewSchemaValidator(name string, schemaMap map[string]interface{}) (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	schemaJSON, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	url := name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &SchemaValidator{schema: schema}, nil
}

// Validate 按 schema 校验参数；失败返回 *ValidationError
func (v *SchemaValidator) Validate(params interface{}) error {
	if err := v.schema.Validate(params); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			return &ValidationError{
				Field:   leaf.InstanceLocation,
				Message: leaf.Message,
				Value:   params,
			}
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// deepestCause 顶层错误信息固定为 "doesn't validate with ..."，取最内层的具体原因
func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// ValidationError 参数校验错误
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}
