package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"recordshop/internal/model"
)

// Record field names, in form order.
const (
	FieldTitle             = "title"
	FieldArtist            = "artist"
	FieldFormat            = "format"
	FieldGenre             = "genre"
	FieldReleaseYear       = "releaseYear"
	FieldPrice             = "price"
	FieldStockQty          = "stockQty"
	FieldCustomerID        = "customerId"
	FieldCustomerFirstName = "customerFirstName"
	FieldCustomerLastName  = "customerLastName"
	FieldCustomerContact   = "customerContact"
	FieldCustomerEmail     = "customerEmail"
)

// Fields lists every form field in display order.
var Fields = []string{
	FieldTitle, FieldArtist, FieldFormat, FieldGenre, FieldReleaseYear, FieldPrice,
	FieldStockQty, FieldCustomerID, FieldCustomerFirstName, FieldCustomerLastName,
	FieldCustomerContact, FieldCustomerEmail,
}

var stringRules = map[string]string{
	FieldTitle:             "required",
	FieldArtist:            "required",
	FieldFormat:            "required",
	FieldGenre:             "required",
	FieldCustomerID:        "required,customerid",
	FieldCustomerFirstName: "required",
	FieldCustomerLastName:  "required",
	FieldCustomerContact:   "required,contact",
	FieldCustomerEmail:     "required,shopemail",
}

// ClientValidationFailure is returned by Submit when any field is invalid.
// Nothing is sent to the server in that case.
type ClientValidationFailure struct {
	Errors Errors
}

func (f *ClientValidationFailure) Error() string {
	return fmt.Sprintf("form has %d invalid field(s): %s", len(f.Errors), f.Errors.Error())
}

// Form holds raw record field values as typed, with touched flags.
// Errors are reported only for touched fields.
type Form struct {
	v       *Validator
	values  map[string]string
	touched map[string]bool
	errs    Errors
}

// NewForm returns an empty add form.
func (v *Validator) NewForm() *Form {
	f := &Form{v: v, values: map[string]string{}, touched: map[string]bool{}, errs: Errors{}}
	for _, field := range Fields {
		f.values[field] = ""
		f.evaluate(field)
	}
	return f
}

// NewEditForm returns a form prefilled from an existing record.
func (v *Validator) NewEditForm(r model.Record) *Form {
	f := v.NewForm()
	f.values[FieldTitle] = r.Title
	f.values[FieldArtist] = r.Artist
	f.values[FieldFormat] = r.Format
	f.values[FieldGenre] = r.Genre
	f.values[FieldReleaseYear] = strconv.Itoa(r.ReleaseYear)
	f.values[FieldPrice] = r.Price.StringFixed(2)
	f.values[FieldStockQty] = strconv.Itoa(r.StockQty)
	f.values[FieldCustomerID] = r.CustomerID
	f.values[FieldCustomerFirstName] = r.CustomerFirstName
	f.values[FieldCustomerLastName] = r.CustomerLastName
	f.values[FieldCustomerContact] = r.CustomerContact
	f.values[FieldCustomerEmail] = r.CustomerEmail
	for _, field := range Fields {
		f.evaluate(field)
	}
	return f
}

// Set stores a raw value, marks the field touched and re-evaluates it.
func (f *Form) Set(field, value string) error {
	if _, ok := f.values[field]; !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	f.values[field] = value
	f.touched[field] = true
	f.evaluate(field)
	return nil
}

// Value returns the raw value of a field.
func (f *Form) Value(field string) string {
	return f.values[field]
}

// Touched reports whether the field was edited or the form was submitted.
func (f *Form) Touched(field string) bool {
	return f.touched[field]
}

// Error returns the message for a touched invalid field, or "".
func (f *Form) Error(field string) string {
	if !f.touched[field] {
		return ""
	}
	return f.errs[field]
}

// Valid reports whether every field currently passes.
func (f *Form) Valid() bool {
	return len(f.errs) == 0
}

// Submit marks every field touched and returns the typed input, or a
// *ClientValidationFailure carrying every invalid field.
func (f *Form) Submit() (model.RecordInput, error) {
	for _, field := range Fields {
		f.touched[field] = true
		f.evaluate(field)
	}
	if !f.Valid() {
		errs := make(Errors, len(f.errs))
		for k, v := range f.errs {
			errs[k] = v
		}
		return model.RecordInput{}, &ClientValidationFailure{Errors: errs}
	}

	year, _ := strconv.Atoi(strings.TrimSpace(f.values[FieldReleaseYear]))
	stock, _ := strconv.Atoi(strings.TrimSpace(f.values[FieldStockQty]))
	price, _ := decimal.NewFromString(strings.TrimSpace(f.values[FieldPrice]))
	return model.RecordInput{
		Title:             f.values[FieldTitle],
		Artist:            f.values[FieldArtist],
		Format:            f.values[FieldFormat],
		Genre:             f.values[FieldGenre],
		ReleaseYear:       year,
		Price:             price,
		StockQty:          stock,
		CustomerID:        f.values[FieldCustomerID],
		CustomerFirstName: f.values[FieldCustomerFirstName],
		CustomerLastName:  f.values[FieldCustomerLastName],
		CustomerContact:   f.values[FieldCustomerContact],
		CustomerEmail:     f.values[FieldCustomerEmail],
	}, nil
}

func (f *Form) evaluate(field string) {
	if rule := f.v.CheckField(field, f.values[field]); rule != "" {
		f.errs[field] = Message(field, rule)
		return
	}
	delete(f.errs, field)
}

// CheckField evaluates one raw field value and returns the first failed rule,
// or "" when the value passes.
func (v *Validator) CheckField(field, raw string) string {
	if rules, ok := stringRules[field]; ok {
		return v.firstFailure(raw, rules)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RuleRequired
	}
	switch field {
	case FieldReleaseYear:
		year, err := strconv.Atoi(trimmed)
		if err != nil {
			return RuleNumber
		}
		return v.firstFailure(year, "min=1900,notfuture")
	case FieldStockQty:
		qty, err := strconv.Atoi(trimmed)
		if err != nil {
			return RuleNumber
		}
		return v.firstFailure(qty, "min=0")
	case FieldPrice:
		price, err := decimal.NewFromString(trimmed)
		if err != nil {
			return RuleNumber
		}
		f, _ := price.Float64()
		return v.firstFailure(f, "min=0")
	}
	return RuleNumber
}

func (v *Validator) firstFailure(value interface{}, rules string) string {
	err := v.validate.Var(value, rules)
	if err == nil {
		return ""
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return ruleFor(fieldErrs[0].Tag())
	}
	return RuleNumber
}
