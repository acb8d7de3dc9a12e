package cosmwasmschema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrNoVariant        = errors.New("no message variant set")
	ErrMultipleVariants = errors.New("more than one message variant set")
	ErrMissingField     = errors.New("missing required field")
	ErrNotEnvelope      = errors.New("message is not a variant envelope")
)

// Variant returns the selector of the single variant set on a message envelope.
//
// An envelope is a struct whose fields are all pointers tagged `json:"<selector>,omitempty"`,
// the shape used by every QueryMsg and ExecuteMsg in this module.
func Variant(msg any) (string, error) {
	v := reflect.ValueOf(msg)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", ErrNoVariant
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: %T", ErrNotEnvelope, msg)
	}

	selector := ""
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			return "", fmt.Errorf("%w: field %s of %s is not a pointer", ErrNotEnvelope, field.Name, t.Name())
		}
		if v.Field(i).IsNil() {
			continue
		}
		if selector != "" {
			return "", fmt.Errorf("%w: %s and %s", ErrMultipleVariants, selector, jsonName(field))
		}
		selector = jsonName(field)
	}

	if selector == "" {
		return "", fmt.Errorf("%w: %s", ErrNoVariant, t.Name())
	}
	return selector, nil
}

// Require returns ErrMissingField naming the first empty value in pairs of (name, value).
func Require(selector string, fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return fmt.Errorf("%w: %s.%s", ErrMissingField, selector, fields[i])
		}
	}
	return nil
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
