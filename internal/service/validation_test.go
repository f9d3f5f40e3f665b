package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kiosk-data/internal/domain"
)

func validForm() domain.VisitorFormData {
	return domain.VisitorFormData{
		Name:             "Jordan Smith",
		WorkPhone:        "+1 (555) 000-0000",
		SelectedPrograms: []int{1, 4},
	}
}

func TestValidateVisitorForm_Valid(t *testing.T) {
	errs := ValidateVisitorForm(validForm())
	require.Empty(t, errs)
}

func TestValidateVisitorForm_NameRequired(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		form := validForm()
		form.Name = name
		errs := ValidateVisitorForm(form)
		require.Equal(t, "Name is required", errs["name"])
		// other fields stay valid, the name error suppresses nothing
		require.NotContains(t, errs, "workPhone")
		require.NotContains(t, errs, "selectedPrograms")
	}
}

func TestValidateVisitorForm_PhoneRequired(t *testing.T) {
	form := validForm()
	form.WorkPhone = "  "
	errs := ValidateVisitorForm(form)
	require.Equal(t, "Phone number is required", errs["workPhone"])
}

func TestValidateVisitorForm_PhoneFormat(t *testing.T) {
	invalid := []string{"call me", "555-ABCD", "+1 555 000 0000 ext. 2", "#5550000"}
	for _, phone := range invalid {
		form := validForm()
		form.WorkPhone = phone
		errs := ValidateVisitorForm(form)
		require.Equal(t, "Please enter a valid phone number", errs["workPhone"], "phone %q", phone)
	}

	valid := []string{"+1 (555) 000-0000", "5550000", "555 000 0000", "(0)30-1234"}
	for _, phone := range valid {
		form := validForm()
		form.WorkPhone = phone
		errs := ValidateVisitorForm(form)
		require.NotContains(t, errs, "workPhone", "phone %q", phone)
	}
}

func TestValidateVisitorForm_ProgramsRequired(t *testing.T) {
	form := validForm()
	form.SelectedPrograms = nil
	errs := ValidateVisitorForm(form)
	require.Equal(t, "Please select at least one program", errs["selectedPrograms"])

	form.SelectedPrograms = []int{}
	errs = ValidateVisitorForm(form)
	require.Contains(t, errs, "selectedPrograms")

	form.SelectedPrograms = []int{7}
	errs = ValidateVisitorForm(form)
	require.NotContains(t, errs, "selectedPrograms")
}

func TestValidateVisitorForm_AllFieldsReportedIndependently(t *testing.T) {
	errs := ValidateVisitorForm(domain.VisitorFormData{})
	require.Len(t, errs, 3)
	require.Contains(t, errs, "name")
	require.Contains(t, errs, "workPhone")
	require.Contains(t, errs, "selectedPrograms")
}

func TestValidateVisitorForm_Idempotent(t *testing.T) {
	form := domain.VisitorFormData{Name: " ", WorkPhone: "abc"}
	first := ValidateVisitorForm(form)
	second := ValidateVisitorForm(form)
	require.Equal(t, first, second)
}
