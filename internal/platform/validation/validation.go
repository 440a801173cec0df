// Package validation wraps go-playground/validator with the venue's custom tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Error reports invalid fields. It unwraps to the sentinel supplied to Check so
// callers can match domain errors with errors.Is.
type Error struct {
	Sentinel error
	Fields   map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	prefix := "invalid input"
	if e.Sentinel != nil {
		prefix = e.Sentinel.Error()
	}
	return fmt.Sprintf("%s: %s", prefix, strings.Join(parts, "; "))
}

// Unwrap exposes the domain sentinel.
func (e *Error) Unwrap() error { return e.Sentinel }

// Field builds an Error for a single field.
func Field(sentinel error, name, message string) *Error {
	return &Error{Sentinel: sentinel, Fields: map[string]string{name: message}}
}

// Check validates v's struct tags. Failures are returned as *Error wrapping sentinel.
func Check(v any, sentinel error) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = describe(fe)
	}
	return &Error{Sentinel: sentinel, Fields: fields}
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister("hhmm", func(fl validator.FieldLevel) bool {
			return IsClock(fl.Field().String())
		})
		mustRegister("isodate", func(fl validator.FieldLevel) bool {
			return IsDate(fl.Field().String())
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// IsClock reports whether value is a 24h "HH:MM" clock time.
func IsClock(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil && len(value) == 5
}

// IsDate reports whether value is a "YYYY-MM-DD" calendar date.
func IsDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " long"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "hhmm":
		return "must be a HH:MM time"
	case "isodate":
		return "must be a YYYY-MM-DD date"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	default:
		return "failed " + fe.Tag()
	}
}
