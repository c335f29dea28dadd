package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed rule, with the message shown on the form.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Result collects the failures of one Validate call in field order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "".
func (r *Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	v     *validator.Validate
	vOnce sync.Once
)

func engine() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		mustRegister("phone10", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
		mustRegister("mailbox", func(fl validator.FieldLevel) bool {
			return IsValidEmail(fl.Field().String())
		})
		// floatin=LO:HI parses a string field and checks LO <= v <= HI.
		mustRegister("floatin", func(fl validator.FieldLevel) bool {
			lo, hi, ok := floatRange(fl.Param())
			if !ok {
				return false
			}
			_, ok = ParseFloatIn(fl.Field().String(), lo, hi)
			return ok
		})
	})
	return v
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %s: %v", tag, err))
	}
}

func floatRange(param string) (lo, hi float64, ok bool) {
	a, b, found := strings.Cut(param, ":")
	if !found {
		return 0, 0, false
	}
	if lo, ok = ParseFloatIn(a, -1e308, 1e308); !ok {
		return 0, 0, false
	}
	if hi, ok = ParseFloatIn(b, -1e308, 1e308); !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// Validate checks s against its `validate` struct tags. Messages name the
// field by its `label` tag; a `msg` tag replaces the message outright.
//
//	type input struct {
//	    FirstName string `validate:"required" label:"First name"`
//	    Phone     string `validate:"phone10" msg:"Phone number must be 10 digits"`
//	}
func Validate(s any) *Result {
	res := &Result{}
	err := engine().Struct(s)
	if err == nil {
		return res
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		res.Errors = append(res.Errors, FieldError{Message: err.Error()})
		return res
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.StructField(),
			Tag:     fe.Tag(),
			Message: message(t, fe),
		})
	}
	return res
}

func message(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if m := f.Tag.Get("msg"); m != "" {
			return m
		}
	}
	label := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return label + " is required"
	case "mailbox", "email":
		return "A valid email address is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "phone10":
		return fmt.Sprintf("%s must be %d digits", label, PhoneDigits)
	case "floatin":
		lo, hi, _ := strings.Cut(fe.Param(), ":")
		return fmt.Sprintf("%s must be between %s and %s", label, lo, hi)
	}
	return label + " is invalid"
}
