package tools

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MARK: - Arguments

func requiredString(req mcp.CallToolRequest, key string) (string, error) {
	v, err := req.RequireString(key)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", argError(fmt.Sprintf("%s is required", key))
	}
	return v, nil
}

func requiredFloat(req mcp.CallToolRequest, key string) (float64, error) {
	v, err := req.RequireFloat(key)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, argError(fmt.Sprintf("%s is required and must be a number", key))
	}
	return v, nil
}

func requiredInt(req mcp.CallToolRequest, key string) (int, error) {
	v, err := req.RequireInt(key)
	if err != nil {
		return 0, argError(fmt.Sprintf("%s is required and must be a whole number", key))
	}
	return v, nil
}

// optionalFloat returns nil when the argument is absent or null.
func optionalFloat(req mcp.CallToolRequest, key string) (*float64, error) {
	raw, ok := req.GetArguments()[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, argError(fmt.Sprintf("%s must be a number", key))
		}
		v = parsed
	default:
		return nil, argError(fmt.Sprintf("%s must be a number", key))
	}
	return &v, nil
}

// optionalString returns nil when the argument is absent.
func optionalString(req mcp.CallToolRequest, key string) *string {
	raw, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	return &raw
}

// MARK: - Validation

// validationMessage flattens validator errors into one line.
func validationMessage(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", false
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return "invalid arguments: " + strings.Join(parts, "; "), true
}

func fieldMessage(fe validator.FieldError) string {
	field := snake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// snake turns a Go field name into the tool argument spelling: WeightKg → weight_kg.
func snake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MARK: - Formatting

// title capitalizes every word of a stored (lowercase) name.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}

// num prints a float the short way: 165 instead of 165.0, 2.5 stays 2.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bandList() string {
	return strings.Join(bandNames(), ", ")
}
