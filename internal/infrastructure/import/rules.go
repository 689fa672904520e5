package csvimport

import (
	"net/mail"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FieldType is the expected type of a column value
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
	TypeEmail   FieldType = "email"
)

// FieldRule describes how one column of an upload is validated
type FieldRule struct {
	Column     string
	Type       FieldType
	Required   bool
	MinLength  int
	MaxLength  int
	Min        *decimal.Decimal
	Max        *decimal.Decimal
	Unique     bool
	DateFormat string
}

// FieldRuleBuilder builds a FieldRule fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field starts a rule for the named column
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{
		Column:     column,
		Type:       TypeString,
		DateFormat: "2006-01-02",
	}}
}

// Required marks the column as mandatory
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int expects an integer value
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal expects a decimal value
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// Date expects a date in the rule's DateFormat
func (b *FieldRuleBuilder) Date() *FieldRuleBuilder {
	b.rule.Type = TypeDate
	return b
}

// Email expects an RFC 5322 address
func (b *FieldRuleBuilder) Email() *FieldRuleBuilder {
	b.rule.Type = TypeEmail
	return b
}

// MinLength sets the minimum string length
func (b *FieldRuleBuilder) MinLength(n int) *FieldRuleBuilder {
	b.rule.MinLength = n
	return b
}

// MaxLength sets the maximum string length
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Min sets the minimum numeric value
func (b *FieldRuleBuilder) Min(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.Min = &v
	return b
}

// Max sets the maximum numeric value
func (b *FieldRuleBuilder) Max(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.Max = &v
	return b
}

// Unique rejects values repeated within the same file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the finished rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// RowValidator validates rows against a set of field rules, tracking
// within-file uniqueness as it goes. Not safe for concurrent use.
type RowValidator struct {
	rules  []FieldRule
	seen   map[string]map[string]int
	errors *ErrorCollection
}

// NewRowValidator creates a validator retaining at most maxErrors errors
func NewRowValidator(rules []FieldRule, maxErrors int) *RowValidator {
	return &RowValidator{
		rules:  rules,
		seen:   make(map[string]map[string]int),
		errors: NewErrorCollection(maxErrors),
	}
}

// RequiredColumns returns the columns that must appear in the header
func (v *RowValidator) RequiredColumns() []string {
	var cols []string
	for _, rule := range v.rules {
		if rule.Required {
			cols = append(cols, rule.Column)
		}
	}
	return cols
}

// ValidateRow checks one row against every rule. It returns true when the
// row is clean; failures are recorded in the validator's error collection.
func (v *RowValidator) ValidateRow(row *Row) bool {
	clean := true

	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if value == "" {
			if rule.Required {
				v.errors.AddRequired(row.LineNumber, rule.Column)
				clean = false
			}
			continue
		}

		if !v.checkType(row.LineNumber, rule, value) {
			clean = false
			continue
		}

		if (rule.MinLength > 0 && len(value) < rule.MinLength) ||
			(rule.MaxLength > 0 && len(value) > rule.MaxLength) {
			v.errors.AddLength(row.LineNumber, rule.Column, rule.MinLength, rule.MaxLength)
			clean = false
		}

		if !v.checkRange(row.LineNumber, rule, value) {
			clean = false
		}

		if rule.Unique {
			if v.seen[rule.Column] == nil {
				v.seen[rule.Column] = make(map[string]int)
			}
			if firstRow, dup := v.seen[rule.Column][value]; dup {
				v.errors.AddDuplicate(row.LineNumber, rule.Column, value, firstRow)
				clean = false
			} else {
				v.seen[rule.Column][value] = row.LineNumber
			}
		}
	}

	return clean
}

func (v *RowValidator) checkType(line int, rule FieldRule, value string) bool {
	var err error
	switch rule.Type {
	case TypeInt:
		_, err = strconv.ParseInt(value, 10, 64)
	case TypeDecimal:
		_, err = decimal.NewFromString(value)
	case TypeDate:
		_, err = time.Parse(rule.DateFormat, value)
	case TypeEmail:
		_, err = mail.ParseAddress(value)
	}
	if err != nil {
		v.errors.AddType(line, rule.Column, string(rule.Type), value)
		return false
	}
	return true
}

func (v *RowValidator) checkRange(line int, rule FieldRule, value string) bool {
	if rule.Min == nil && rule.Max == nil {
		return true
	}
	if rule.Type != TypeInt && rule.Type != TypeDecimal {
		return true
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	if rule.Min != nil && d.LessThan(*rule.Min) {
		v.errors.AddRange(line, rule.Column, "at least "+rule.Min.String(), value)
		return false
	}
	if rule.Max != nil && d.GreaterThan(*rule.Max) {
		v.errors.AddRange(line, rule.Column, "at most "+rule.Max.String(), value)
		return false
	}
	return true
}

// Errors returns the accumulated errors
func (v *RowValidator) Errors() *ErrorCollection {
	return v.errors
}
