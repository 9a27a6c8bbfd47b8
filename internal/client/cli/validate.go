package cli

import (
	"fmt"
	"strings"
)

// Form validation happens before any network call; a failed check blocks
// submission locally.

// ValidateEmail rejects obviously malformed addresses. The backend remains
// the authority; this only catches typos before a round trip.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address: %q", email)
	}
	domain := email[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}

// ValidateRegistration checks the registration form fields locally.
func ValidateRegistration(email string, password, password2 []byte) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}
	if string(password) != string(password2) {
		return fmt.Errorf("the two password fields didn't match")
	}
	return nil
}
