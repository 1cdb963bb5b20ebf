package domain

import (
	"strings"
	"time"
)

// Field identifies one input of the invoice form
type Field int

const (
	FieldInvoiceNumber Field = iota
	FieldInvoiceDate
	FieldSenderName
	FieldSenderAddress
	FieldSenderPhone
	FieldSenderEmail
	FieldReceiverName
	FieldReceiverAddress
	FieldReceiverPhone
	FieldReceiverEmail
	FieldTPSCode
	FieldTVQCode
	fieldCount
)

// rule decides which message a field value earns
type rule int

const (
	ruleOptional rule = iota
	rulePresent
	ruleDate
)

type fieldDef struct {
	key  string
	rule rule
}

var fieldDefs = [fieldCount]fieldDef{
	FieldInvoiceNumber:   {"invoiceNumber", rulePresent},
	FieldInvoiceDate:     {"invoiceDate", ruleDate},
	FieldSenderName:      {"sender.name", rulePresent},
	FieldSenderAddress:   {"sender.address", rulePresent},
	FieldSenderPhone:     {"sender.phone", rulePresent},
	FieldSenderEmail:     {"sender.email", ruleOptional},
	FieldReceiverName:    {"receiver.name", rulePresent},
	FieldReceiverAddress: {"receiver.address", ruleOptional},
	FieldReceiverPhone:   {"receiver.phone", ruleOptional},
	FieldReceiverEmail:   {"receiver.email", ruleOptional},
	FieldTPSCode:         {"tpsCode", rulePresent},
	FieldTVQCode:         {"tvqCode", rulePresent},
}

// Valid returns true for members of the closed field set
func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

// Key returns the stable dotted identifier of the field
func (f Field) Key() string {
	if !f.Valid() {
		return ""
	}
	return fieldDefs[f].key
}

// String implements fmt.Stringer
func (f Field) String() string {
	if k := f.Key(); k != "" {
		return k
	}
	return "unknown"
}

// Required returns true if the field must be filled before printing
func (f Field) Required() bool {
	return f.Valid() && fieldDefs[f].rule != ruleOptional
}

// IsSender returns true for the sender block fields
func (f Field) IsSender() bool {
	return f >= FieldSenderName && f <= FieldSenderEmail
}

// IsReceiver returns true for the receiver block fields
func (f Field) IsReceiver() bool {
	return f >= FieldReceiverName && f <= FieldReceiverEmail
}

// IsTaxCode returns true for the two tax registration codes
func (f Field) IsTaxCode() bool {
	return f == FieldTPSCode || f == FieldTVQCode
}

// AllFields lists every form field in screen order
func AllFields() []Field {
	fields := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		fields = append(fields, f)
	}
	return fields
}

// RequiredFields lists the fields checked before printing, in screen order
func RequiredFields() []Field {
	var fields []Field
	for _, f := range AllFields() {
		if f.Required() {
			fields = append(fields, f)
		}
	}
	return fields
}

// Validate returns the message a value earns for the field, or "" when it
// passes. Optional and unknown fields always pass.
func Validate(f Field, value string, lang Language) string {
	if !f.Valid() {
		return ""
	}
	switch fieldDefs[f].rule {
	case rulePresent:
		if strings.TrimSpace(value) == "" {
			return lang.requiredMessage(f)
		}
	case ruleDate:
		if strings.TrimSpace(value) == "" {
			return lang.requiredMessage(f)
		}
		if _, err := time.Parse(DateLayout, strings.TrimSpace(value)); err != nil {
			return lang.invalidDateMessage()
		}
	}
	return ""
}
