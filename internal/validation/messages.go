package validation

// Rule names used to pick a message.
const (
	RuleRequired = "required"
	RulePattern  = "pattern"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleNumber   = "number"
)

const (
	msgRequired    = "This field is required"
	msgInvalid     = "Invalid value"
	msgCustomerID  = "ID must be numbers followed by a letter (e.g., 123A)"
	msgContact     = "Contact must be at least 8 digits"
	msgEmail       = "Please enter a valid email address"
	msgYearMin     = "Year must be 1900 or later"
	msgYearMax     = "Year cannot be in the future"
	msgNonNegative = "Value must be 0 or greater"
)

// Message returns the text shown for a failed rule on a field.
func Message(field, rule string) string {
	switch rule {
	case RuleRequired:
		return msgRequired
	case RulePattern:
		switch field {
		case FieldCustomerID:
			return msgCustomerID
		case FieldCustomerContact:
			return msgContact
		case FieldCustomerEmail:
			return msgEmail
		}
	case RuleMin:
		switch field {
		case FieldReleaseYear:
			return msgYearMin
		case FieldPrice, FieldStockQty:
			return msgNonNegative
		}
	case RuleMax:
		if field == FieldReleaseYear {
			return msgYearMax
		}
	}
	return msgInvalid
}
