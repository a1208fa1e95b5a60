package repository

import (
	"fmt"
	"strings"
)

const (
	FieldName  = "Name"
	FieldPhone = "Phone Number"
	FieldEmail = "Email"
	FieldAge   = "Age"
)

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// formulaString quotes s as an Airtable formula string literal.
func formulaString(s string) string {
	return "'" + formulaEscaper.Replace(s) + "'"
}

// duplicateFormula matches records whose email or phone equals the given values.
func duplicateFormula(email, phone string) string {
	return fmt.Sprintf("OR({%s}=%s,{%s}=%s)", FieldEmail, formulaString(email), FieldPhone, formulaString(phone))
}
