// Package domain defines the core domain models for the estate service.
package domain

import "strings"

// ContactSubmission represents a visitor message from the contact form.
type ContactSubmission struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// Validate validates the submission fields.
func (c *ContactSubmission) Validate() error {
	var violations []string

	if strings.TrimSpace(c.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		violations = append(violations, "email is required")
	} else if !strings.Contains(c.Email, "@") {
		violations = append(violations, "email is not valid")
	}
	if strings.TrimSpace(c.Phone) == "" {
		violations = append(violations, "phone is required")
	}
	if strings.TrimSpace(c.Message) == "" {
		violations = append(violations, "message is required")
	}

	if len(violations) > 0 {
		return ErrValidation.WithDetails(strings.Join(violations, "; "))
	}
	return nil
}
