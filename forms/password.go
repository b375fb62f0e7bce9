package forms

import "unicode/utf8"

const MinPasswordLength = 8

type PasswordResult struct {
	Valid  bool
	Errors []string
}

// ValidatePassword requires at least MinPasswordLength characters with an
// upper-case letter, a lower-case letter, a digit and a special character.
// Every unmet rule is reported, in that order.
func ValidatePassword(pw string) PasswordResult {
	if pw == "" {
		return PasswordResult{Errors: []string{"Password is required"}}
	}

	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	var errs []string
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if !upper {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lower {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digit {
		errs = append(errs, "Password must contain at least one number")
	}
	if !special {
		errs = append(errs, "Password must contain at least one special character")
	}

	return PasswordResult{Valid: len(errs) == 0, Errors: errs}
}

// PasswordError returns the first unmet password rule, or "" if pw is valid.
func PasswordError(pw string) string {
	res := ValidatePassword(pw)
	if len(res.Errors) == 0 {
		return ""
	}
	return res.Errors[0]
}
