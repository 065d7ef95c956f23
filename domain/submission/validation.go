package submission

import (
	"regexp"
	"strings"
)

var (
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	enrollmentPattern = regexp.MustCompile(`^\d{12}$`)
	namePattern       = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	contactPattern    = regexp.MustCompile(`^\d{10}$`)
	urlPattern        = regexp.MustCompile(`(?i)^https?://[^\s/?#]\S*$`)
)

func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email ID is required"
	}
	if len(email) > 254 {
		return false, "Email ID must be at most 254 characters"
	}
	if !emailPattern.MatchString(email) {
		return false, "Invalid email format (e.g., user@example.com)"
	}
	return true, ""
}

func ValidateEnrollment(enrollment string) (bool, string) {
	if enrollment == "" {
		return false, "Enrollment Number is required"
	}
	if !enrollmentPattern.MatchString(enrollment) {
		return false, "Enrollment Number must be exactly 12 digits"
	}
	return true, ""
}

func ValidateName(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, "Full Name is required"
	}
	if !namePattern.MatchString(trimmed) {
		return false, "Full Name can only contain letters and spaces"
	}
	if len(trimmed) < 2 || len(trimmed) > 100 {
		return false, "Full Name must be between 2 and 100 characters"
	}
	return true, ""
}

func ValidateContact(contact string) (bool, string) {
	if contact == "" {
		return false, "Contact Number is required"
	}
	if !contactPattern.MatchString(contact) {
		return false, "Contact Number must be exactly 10 digits"
	}
	if strings.Count(contact, contact[0:1]) == len(contact) {
		return false, "Contact Number cannot be all identical digits"
	}
	return true, ""
}

func ValidateProjectName(projectName string) (bool, string) {
	trimmed := strings.TrimSpace(projectName)
	if trimmed == "" {
		return false, "Project Name is required"
	}
	if len(trimmed) < 3 {
		return false, "Project Name must be at least 3 characters"
	}
	if len(trimmed) > 200 {
		return false, "Project Name must be at most 200 characters"
	}
	return true, ""
}

func ValidateURL(url string) (bool, string) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return false, "Source URL is required"
	}
	if len(trimmed) > 2048 {
		return false, "Source URL must be at most 2048 characters"
	}
	if !urlPattern.MatchString(trimmed) {
		return false, "URL must start with http:// or https://"
	}
	return true, ""
}

// ValidateField checks a single field value by its wire name.
func ValidateField(field, value string) (bool, string) {
	switch field {
	case FieldEmail:
		return ValidateEmail(value)
	case FieldEnrollmentNumber:
		return ValidateEnrollment(value)
	case FieldFullName:
		return ValidateName(value)
	case FieldContactNumber:
		return ValidateContact(value)
	case FieldProjectName:
		return ValidateProjectName(value)
	case FieldSourceURL:
		return ValidateURL(value)
	}
	return false, "unknown field '" + field + "'"
}

// ValidateAll checks every field of a creation against its normalized value
// and collects every failing message instead of stopping at the first one.
func ValidateAll(creation SubmissionCreation) (bool, []string) {
	record := creation.Normalize()

	messages := []string{}
	for _, check := range [][2]string{
		{FieldEmail, record.Email},
		{FieldEnrollmentNumber, record.EnrollmentNumber},
		{FieldFullName, record.FullName},
		{FieldContactNumber, record.ContactNumber},
		{FieldProjectName, record.ProjectName},
		{FieldSourceURL, record.SourceURL},
	} {
		if ok, message := ValidateField(check[0], check[1]); !ok {
			messages = append(messages, message)
		}
	}
	return len(messages) == 0, messages
}
