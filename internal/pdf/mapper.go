package pdf

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/formdesk/server/internal/models"
)

// FieldMap flattens a form's field values into the key/value map used to
// fill the PDF's named form fields, merged with the owner's personal
// information. Only fields marked valid contribute; unrecognised field
// types contribute nothing. Rules run in a fixed order and only ever add
// keys.
func FieldMap(form *models.Form, pi models.PersonalInformation) map[string]any {
	m := make(map[string]any)

	// Text and date fields map straight to their own name.
	for _, f := range form.Fields {
		if !f.IsValid {
			continue
		}
		if f.Type == models.FieldText || f.Type == models.FieldDatePicker {
			m[f.Name] = f.Value
		}
	}

	// multiSelect options are addressed by option name in the PDF.
	for _, f := range form.Fields {
		if f.Type != models.FieldMultiSelect || !f.IsValid {
			continue
		}
		for _, opt := range f.Options {
			m[opt.Name] = opt.Value
		}
	}

	// radioGroup options become boolean keys fieldName + OptionName; the
	// one whose name equals the field's current value is set.
	for _, f := range form.Fields {
		if f.Type != models.FieldRadioGroup || !f.IsValid {
			continue
		}
		for _, opt := range f.Options {
			m[f.Name+capitalize(opt.Name)] = f.Value == opt.Name
		}
	}

	// buttonSelect is keyed by the field name for every option; one with
	// no options contributes nothing.
	for _, f := range form.Fields {
		if f.Type != models.FieldButtonSelect || !f.IsValid {
			continue
		}
		for range f.Options {
			m[f.Name] = f.Value
		}
	}

	m["businessTrip"] = true
	now := time.Now()
	m["date"] = fmt.Sprintf("%d.%d.%d", now.Day(), int(now.Month()), now.Year())

	if pi.LastName != "" && pi.FirstName != "" {
		m["name"] = pi.LastName + ", " + pi.FirstName
	}
	if pi.Institute != "" {
		m["institute"] = pi.Institute
	}
	if pi.Phone != "" {
		m["telephone"] = pi.Phone
	}
	switch pi.Position {
	case models.PositionGraduateStudent:
		m["graduateStudent"] = true
	case models.PositionStudent:
		m["student"] = true
	case models.PositionEmployee:
		m["employee"] = true
	}

	return m
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
