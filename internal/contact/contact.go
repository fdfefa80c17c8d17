// Package contact validates the contact form. Every rule is checked on each
// submit so all violations can be shown at once.
package contact

import (
	"regexp"
	"strings"
)

type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPhone
	FieldMessage
)

// Fields lists the form fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldPhone, FieldMessage}
}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldEmail:
		return "email"
	case FieldPhone:
		return "phone"
	case FieldMessage:
		return "message"
	default:
		return "unknown"
	}
}

const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgPhoneInvalid    = "Please enter a valid phone number"
	MsgMessageRequired = "Message is required"
	MsgSubmitted       = "Form submitted successfully!"
)

// RE2's \s is ASCII only; the classes below add Unicode separators and the
// BOM so non-breaking and ideographic spaces count as whitespace too.
var (
	emailRe = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)
	phoneRe = regexp.MustCompile(`(?im)^[+]?[(]?[0-9]{3}[)]?[-\s\p{Z}\x{FEFF}.]?[0-9]{3}[-\s\p{Z}\x{FEFF}.]?[0-9]{4,6}$`)
)

type Form struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

func (f Form) Value(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldPhone:
		return f.Phone
	case FieldMessage:
		return f.Message
	}
	return ""
}

// IsValidEmail reports whether s looks like local@domain.tld with no
// whitespace or extra "@".
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone accepts North American style numbers: optional "+", optional
// parenthesised area code, space/dot/hyphen separators and a 4-6 digit tail.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// FieldError is one inline message attached to a field.
type FieldError struct {
	Field   Field
	Message string
}

type Result struct {
	errs []FieldError
}

func (r Result) Valid() bool {
	return len(r.errs) == 0
}

// Errors returns the violations in field order.
func (r Result) Errors() []FieldError {
	out := make([]FieldError, len(r.errs))
	copy(out, r.errs)
	return out
}

// Error returns the inline message for field, or "" when it passed.
func (r Result) Error(field Field) string {
	for _, e := range r.errs {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Validate trims every field and checks all of them independently.
func Validate(f Form) Result {
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.Phone)
	message := strings.TrimSpace(f.Message)

	var r Result
	if name == "" {
		r.add(FieldName, MsgNameRequired)
	}
	switch {
	case email == "":
		r.add(FieldEmail, MsgEmailRequired)
	case !IsValidEmail(email):
		r.add(FieldEmail, MsgEmailInvalid)
	}
	if phone != "" && !IsValidPhone(phone) {
		r.add(FieldPhone, MsgPhoneInvalid)
	}
	if message == "" {
		r.add(FieldMessage, MsgMessageRequired)
	}
	return r
}

func (r *Result) add(field Field, msg string) {
	r.errs = append(r.errs, FieldError{Field: field, Message: msg})
}
