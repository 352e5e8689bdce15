package validation

import (
	"regexp"
	"unicode"
)

const MaxFileSize = 5 * 1024 * 1024

var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	nameRe  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var EmailSchema = String().
	Email("please enter a valid email").
	Min(1, "email is required")

var PasswordSchema = String().
	Min(8, "password must be at least 8 characters long").
	Refine(hasLowerUpperDigit, "password must contain an uppercase letter, a lowercase letter and a number")

var NameSchema = String().
	Min(2, "name must be at least 2 characters long").
	Max(50, "name cannot be longer than 50 characters").
	Matches(nameRe, "name can only contain letters and spaces")

var PhoneSchema = String().
	Matches(phoneRe, "please enter a valid phone number")

var URLSchema = String().
	URL("please enter a valid URL").
	HTTPSOnly("URL must use https")

var FileSchema = Object(map[string]Schema{
	"size": Number().Max(MaxFileSize, "file cannot be larger than 5MB"),
	"type": String().OneOf(AllowedImageTypes, "only JPEG, PNG and WebP files are allowed"),
})

// FileMeta describes an upload before it is accepted.
type FileMeta struct {
	Size int64  `json:"size"`
	Type string `json:"type"`
}

func hasLowerUpperDigit(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
