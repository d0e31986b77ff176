// Package validation holds the record field rules shared by the API and the
// staff client, and the text shown for each failed rule.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"recordshop/internal/model"
)

var (
	customerIDPattern = regexp.MustCompile(`^\d+[A-Za-z]$`)
	contactPattern    = regexp.MustCompile(`^\d{8,}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Errors maps a JSON field name to the message of its first failed rule.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Validator wraps validator.Validate with the record rules registered.
// It also satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New builds a Validator that checks years against the wall clock.
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock builds a Validator whose "not in the future" rule uses now.
func NewWithClock(now func() time.Time) *Validator {
	v := &Validator{validate: validator.New(), now: now}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v.validate, "customerid", matches(customerIDPattern))
	mustRegister(v.validate, "contact", matches(contactPattern))
	mustRegister(v.validate, "shopemail", matches(emailPattern))
	mustRegister(v.validate, "notfuture", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() <= int64(v.now().Year())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// Validate implements echo.Validator. Field failures come back as Errors.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	errs := Errors{}
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = Message(fe.Field(), ruleFor(fe.Tag()))
		}
	}
	return errs
}

// ValidateRecord checks a full record input.
func (v *Validator) ValidateRecord(in model.RecordInput) error {
	return v.Validate(&in)
}

// ruleFor folds validator tags into the rule names messages are keyed by.
func ruleFor(tag string) string {
	switch tag {
	case "customerid", "contact", "shopemail":
		return RulePattern
	case "notfuture":
		return RuleMax
	default:
		return tag
	}
}
