package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordshop/internal/model"
)

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC) }
}

func validInput() model.RecordInput {
	return model.RecordInput{
		Title:             "Kind of Blue",
		Artist:            "Miles Davis",
		Format:            "Vinyl",
		Genre:             "Jazz",
		ReleaseYear:       1959,
		Price:             decimal.RequireFromString("24.99"),
		StockQty:          3,
		CustomerID:        "123A",
		CustomerFirstName: "Nina",
		CustomerLastName:  "Byrne",
		CustomerContact:   "08761234",
		CustomerEmail:     "nina@example.ie",
	}
}

func TestCheckField(t *testing.T) {
	v := NewWithClock(fixedClock())

	tests := []struct {
		name  string
		field string
		raw   string
		rule  string
	}{
		{"customer id digits only", FieldCustomerID, "123", RulePattern},
		{"customer id digits and letter", FieldCustomerID, "123A", ""},
		{"customer id empty", FieldCustomerID, "", RuleRequired},
		{"contact seven digits", FieldCustomerContact, "1234567", RulePattern},
		{"contact eight digits", FieldCustomerContact, "12345678", ""},
		{"contact with letters", FieldCustomerContact, "1234567a", RulePattern},
		{"email valid", FieldCustomerEmail, "a.b@shop.ie", ""},
		{"email without tld", FieldCustomerEmail, "a@shop", RulePattern},
		{"year 1899", FieldReleaseYear, "1899", RuleMin},
		{"year 1900", FieldReleaseYear, "1900", ""},
		{"current year", FieldReleaseYear, "2025", ""},
		{"next year", FieldReleaseYear, "2026", RuleMax},
		{"year not a number", FieldReleaseYear, "nineteen", RuleNumber},
		{"year empty", FieldReleaseYear, " ", RuleRequired},
		{"negative price", FieldPrice, "-0.01", RuleMin},
		{"zero price", FieldPrice, "0", ""},
		{"zero stock", FieldStockQty, "0", ""},
		{"negative stock", FieldStockQty, "-1", RuleMin},
		{"title empty", FieldTitle, "", RuleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rule, v.CheckField(tt.field, tt.raw))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "This field is required", Message(FieldTitle, RuleRequired))
	assert.Equal(t, "ID must be numbers followed by a letter (e.g., 123A)", Message(FieldCustomerID, RulePattern))
	assert.Equal(t, "Contact must be at least 8 digits", Message(FieldCustomerContact, RulePattern))
	assert.Equal(t, "Please enter a valid email address", Message(FieldCustomerEmail, RulePattern))
	assert.Equal(t, "Year must be 1900 or later", Message(FieldReleaseYear, RuleMin))
	assert.Equal(t, "Value must be 0 or greater", Message(FieldPrice, RuleMin))
	assert.Equal(t, "Value must be 0 or greater", Message(FieldStockQty, RuleMin))
	assert.Equal(t, "Year cannot be in the future", Message(FieldReleaseYear, RuleMax))
	assert.Equal(t, "Invalid value", Message(FieldTitle, RulePattern))
	assert.Equal(t, "Invalid value", Message(FieldReleaseYear, RuleNumber))
}

func TestValidateRecord(t *testing.T) {
	v := NewWithClock(fixedClock())

	require.NoError(t, v.ValidateRecord(validInput()))

	in := validInput()
	in.CustomerID = "123"
	in.ReleaseYear = 2026
	in.Price = decimal.RequireFromString("-1")
	in.Title = ""

	err := v.ValidateRecord(in)
	require.Error(t, err)

	errs, ok := err.(Errors)
	require.True(t, ok)
	assert.Equal(t, Errors{
		FieldCustomerID:  "ID must be numbers followed by a letter (e.g., 123A)",
		FieldReleaseYear: "Year cannot be in the future",
		FieldPrice:       "Value must be 0 or greater",
		FieldTitle:       "This field is required",
	}, errs)
	assert.Contains(t, err.Error(), "customerId: ID must be numbers")
}

func TestFormReportsOnlyTouchedFields(t *testing.T) {
	f := NewWithClock(fixedClock()).NewForm()

	assert.False(t, f.Valid())
	assert.Empty(t, f.Error(FieldTitle))

	require.NoError(t, f.Set(FieldCustomerID, "123"))
	assert.True(t, f.Touched(FieldCustomerID))
	assert.Equal(t, "ID must be numbers followed by a letter (e.g., 123A)", f.Error(FieldCustomerID))

	require.NoError(t, f.Set(FieldCustomerID, "123A"))
	assert.Empty(t, f.Error(FieldCustomerID))
	assert.Empty(t, f.Error(FieldTitle))

	assert.Error(t, f.Set("barcode", "x"))
}

func TestFormSubmit(t *testing.T) {
	v := NewWithClock(fixedClock())

	t.Run("empty form fails on every field", func(t *testing.T) {
		f := v.NewForm()
		_, err := f.Submit()

		var failure *ClientValidationFailure
		require.ErrorAs(t, err, &failure)
		assert.Len(t, failure.Errors, len(Fields))
		assert.Equal(t, "This field is required", f.Error(FieldTitle))
	})

	t.Run("complete form yields typed input", func(t *testing.T) {
		f := v.NewForm()
		values := map[string]string{
			FieldTitle:             "Kind of Blue",
			FieldArtist:            "Miles Davis",
			FieldFormat:            "Vinyl",
			FieldGenre:             "Jazz",
			FieldReleaseYear:       "1959",
			FieldPrice:             "24.99",
			FieldStockQty:          "3",
			FieldCustomerID:        "123A",
			FieldCustomerFirstName: "Nina",
			FieldCustomerLastName:  "Byrne",
			FieldCustomerContact:   "08761234",
			FieldCustomerEmail:     "nina@example.ie",
		}
		for field, value := range values {
			require.NoError(t, f.Set(field, value))
		}

		in, err := f.Submit()
		require.NoError(t, err)
		want := validInput()
		assert.True(t, want.Price.Equal(in.Price))
		in.Price = want.Price
		assert.Equal(t, want, in)
	})

	t.Run("edit form starts from the record", func(t *testing.T) {
		r := validInput().ToRecord()
		r.ID = 4
		f := v.NewEditForm(r)

		assert.True(t, f.Valid())
		assert.Equal(t, "24.99", f.Value(FieldPrice))
		assert.Equal(t, "1959", f.Value(FieldReleaseYear))
	})
}
