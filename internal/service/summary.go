package service

import "github.com/formdesk/server/internal/models"

// Summarize reduces a form to its list-view projection. It is pure: no
// side effects, defined for any well-formed form.
//
// businessTrip forms expose begin/end and use the destinations field as
// the display name ("-" when empty); vacation forms expose begin/end with
// an empty name; every other type carries only the base fields.
func Summarize(form models.Form) models.FormSummary {
	summary := models.FormSummary{
		ID:       form.ID,
		Type:     form.Type,
		Tag:      form.Tag,
		LastEdit: form.LastEdit,
	}

	fieldValue := func(name string) string {
		for _, f := range form.Fields {
			if f.Name == name {
				return f.Value
			}
		}
		return ""
	}

	switch form.Type {
	case models.TypeBusinessTrip:
		begin := fieldValue("begin")
		end := fieldValue("end")
		name := fieldValue("destinations")
		if name == "" {
			name = "-"
		}
		summary.Begin, summary.End, summary.Name = &begin, &end, &name
	case models.TypeVacation:
		begin := fieldValue("begin")
		end := fieldValue("end")
		name := ""
		summary.Begin, summary.End, summary.Name = &begin, &end, &name
	}

	summary.IsComplete = form.ComputeComplete()
	return summary
}
