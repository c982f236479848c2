package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("intrange", intRange) //nolint:errcheck
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// intRange checks that a string field holds an integer within "min:max".
func intRange(fl validator.FieldLevel) bool {
	bounds := strings.SplitN(fl.Param(), ":", 2)
	if len(bounds) != 2 {
		return false
	}
	lo, err := strconv.Atoi(bounds[0])
	if err != nil {
		return false
	}
	hi, err := strconv.Atoi(bounds[1])
	if err != nil {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return n >= lo && n <= hi
}

// Messages turns validation failures into short readable sentences, one per
// failed field. Other errors are returned as their text.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s is required", field))
		case "email":
			out = append(out, fmt.Sprintf("%s is not a valid email address", field))
		case "datetime":
			out = append(out, fmt.Sprintf("%s must be in %s format", field, fe.Param()))
		case "intrange":
			out = append(out, fmt.Sprintf("%s must be between %s", field, strings.Replace(fe.Param(), ":", " and ", 1)))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", field))
		}
	}
	return out
}
