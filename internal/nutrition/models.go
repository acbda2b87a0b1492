package nutrition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	// ErrUnknownFood is returned when a name is not in the reference table.
	ErrUnknownFood = errors.New("food not found in database")
	ErrEmptyName   = errors.New("food name cannot be empty")
)

// ParseErrorKind classifies a rejected meal token.
type ParseErrorKind int

const (
	// KindFormat — токен не вида "food:quantity"
	KindFormat ParseErrorKind = iota + 1
	// KindQuantity — количество не число
	KindQuantity
	// KindNonPositive — количество <= 0, NaN или Inf
	KindNonPositive
)

// ParseError describes one token of a meal string that could not be used.
type ParseError struct {
	Token string
	Kind  ParseErrorKind
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindQuantity:
		return fmt.Sprintf("invalid quantity in item %q", e.Token)
	case KindNonPositive:
		return fmt.Sprintf("quantity must be positive in item %q", e.Token)
	default:
		return fmt.Sprintf("invalid format for item %q, use 'food:quantity'", e.Token)
	}
}

// ParsedItem is one token of a meal string. Err is set when the token was rejected.
type ParsedItem struct {
	Raw   string
	Food  string
	Grams float64
	Err   *ParseError
}

// AddFoodRequest — новая строка справочника, значения на 100 г
type AddFoodRequest struct {
	Name     string  `validate:"required"`
	Calories float64 `validate:"gte=0"`
	Protein  float64 `validate:"gte=0"`
	Carbs    float64 `validate:"gte=0"`
	Fats     float64 `validate:"gte=0"`
	Fiber    float64 `validate:"gte=0"`
}

func (r *AddFoodRequest) Validate() error {
	r.Name = Normalize(r.Name)
	if r.Name == "" {
		return ErrEmptyName
	}
	return validate.Struct(r)
}

// Normalize приводит имя продукта к ключу справочника
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
