package service

import (
	"regexp"
	"strings"

	"kiosk-data/internal/domain"
)

// phoneRegexp digits, spaces, hyphens, parentheses, optional leading plus.
var phoneRegexp = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// FormErrors field name -> human-readable message. Empty map means valid.
type FormErrors map[string]string

// ValidateVisitorForm checks the kiosk form. Pure function: the three rules
// are evaluated independently, one rule's failure never suppresses another's.
func ValidateVisitorForm(form domain.VisitorFormData) FormErrors {
	errors := FormErrors{}

	if strings.TrimSpace(form.Name) == "" {
		errors["name"] = "Name is required"
	}

	phone := strings.TrimSpace(form.WorkPhone)
	if phone == "" {
		errors["workPhone"] = "Phone number is required"
	} else if !phoneRegexp.MatchString(phone) {
		errors["workPhone"] = "Please enter a valid phone number"
	}

	if len(form.SelectedPrograms) == 0 {
		errors["selectedPrograms"] = "Please select at least one program"
	}

	return errors
}
