package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// validate is gin's binding engine, so ShouldBindJSON and the Validate
// methods apply the same rules.
var validate = binding.Validator.Engine().(*validator.Validate)

type passwordRule struct {
	tag     string
	message string
}

// passwordRules is checked in full so every broken rule is reported at once.
var passwordRules = []passwordRule{
	{"min=6", "Passwords must be at least 6 characters."},
	{"maxbytes=72", "Passwords must be at most 72 bytes long."},
	{"containsany=0123456789", "Passwords must have at least one digit ('0'-'9')."},
	{"containsany=abcdefghijklmnopqrstuvwxyz", "Passwords must have at least one lowercase ('a'-'z')."},
	{"containsany=ABCDEFGHIJKLMNOPQRSTUVWXYZ", "Passwords must have at least one uppercase ('A'-'Z')."},
	{"nonalnum", "Passwords must have at least one non alphanumeric character."},
}

func init() {
	// prices go out as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	validate.RegisterTagNameFunc(fieldName)
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		return d.InexactFloat64()
	}, decimal.Decimal{})

	mustRegister("notblank", validators.NotBlank)
	mustRegister("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	mustRegister("nonalnum", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) >= 0
	})
	mustRegister("password", func(fl validator.FieldLevel) bool {
		return len(passwordProblems(fl.Field().String())) == 0
	})
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// fieldName reports fields by their wire name: json first, then form.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func passwordProblems(password string) []string {
	var problems []string
	for _, rule := range passwordRules {
		if validate.Var(password, rule.tag) != nil {
			problems = append(problems, rule.message)
		}
	}
	return problems
}

// validateStruct runs the binding rules on v and returns what failed.
func validateStruct(v interface{}) FieldErrors {
	errs := FieldErrors{}
	if err := validate.Struct(v); err != nil {
		if translated, ok := FieldErrorsFrom(err); ok {
			return translated
		}
		errs.Add("", err.Error())
	}
	return errs
}

// FieldErrorsFrom converts validator errors into per-field messages. It
// reports false for any other kind of error.
func FieldErrorsFrom(err error) (FieldErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	errs := FieldErrors{}
	for _, fe := range verrs {
		if fe.Tag() == "password" {
			for _, msg := range passwordProblems(fmt.Sprint(fe.Value())) {
				errs.Add(fe.Field(), msg)
			}
			continue
		}
		errs.Add(fe.Field(), message(fe))
	}
	return errs, true
}

func message(fe validator.FieldError) string {
	label := fe.StructField()
	text := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required.", label)
	case "min":
		if text {
			return fmt.Sprintf("%s must be at least %s characters long.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if text {
			return fmt.Sprintf("%s cannot exceed %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "email":
		return fmt.Sprintf("%s is not a valid email address.", label)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
