package usecase

import (
	"fmt"
	"regexp"

	"auth-gateway/internal/domain"
)

// DefaultPasswordMinLength matches the provider's default password floor.
const DefaultPasswordMinLength = 8

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// checkCredentials applies local shape validation before any provider
// round trip. Rejections never include the submitted values.
func checkCredentials(creds domain.Credentials, minPasswordLen int) error {
	if creds.Email == "" || !emailPattern.MatchString(creds.Email) {
		return fmt.Errorf("%w: email address is not valid", domain.ErrValidationFailed)
	}
	if len(creds.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidationFailed, minPasswordLen)
	}
	return nil
}
