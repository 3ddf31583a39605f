package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field limits for contact form submissions
const (
	NameMinLen    = 2
	NameMaxLen    = 50
	EmailMaxLen   = 100
	MessageMinLen = 10
	MessageMaxLen = 1000

	// Messages longer than capsCheckMinLen are rejected when the share of
	// uppercase letters among all letters exceeds capsRatioLimit.
	capsCheckMinLen = 20
	capsRatioLimit  = 0.7
)

// Regex patterns
var (
	// Letters, literal spaces, hyphens, apostrophes only. Digits and
	// other symbols are rejected, and so is every other whitespace kind:
	// CR/LF in a name would otherwise ride into the mail headers.
	nameRegex = regexp.MustCompile(`^[A-Za-z '-]+$`)

	// Conservative address shape: local part, @, dotted domain with a
	// 2+ letter TLD. Deliberately stricter than RFC 5321.
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

	validate = validator.New()
)

// spamTokens is a best-effort content denylist, matched case-insensitively
// as substrings. It is a spam heuristic, not a security boundary.
var spamTokens = []string{
	"viagra",
	"cialis",
	"casino",
	"lottery",
	"jackpot",
	"bitcoin giveaway",
	"free money",
	"make money fast",
	"work from home",
	"click here",
	"buy now",
}

// RegisterValidators registers the contact-form checks as custom tags so
// other request types can bind them declaratively.
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("contact_name", func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("safe_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
}

// ValidName reports whether s is an acceptable person name: letters,
// spaces, hyphens, and apostrophes, length 2-50.
func ValidName(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < NameMinLen || n > NameMaxLen {
		return false
	}
	return nameRegex.MatchString(s)
}

// ValidEmail reports whether s is a safe, conservatively shaped address.
// CR, LF, NUL, and percent are rejected outright: any of them in an
// address-like field is a mail-header injection attempt.
func ValidEmail(s string) bool {
	if s == "" || len(s) > EmailMaxLen {
		return false
	}
	if strings.ContainsAny(s, "\r\n\x00%") {
		return false
	}
	if !emailRegex.MatchString(s) {
		return false
	}
	return validate.Var(s, "email") == nil
}

// ValidMessageLength reports whether the message length is within bounds,
// boundaries inclusive.
func ValidMessageLength(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= MessageMinLen && n <= MessageMaxLen
}

// SpamToken returns the first denylisted token contained in s, if any.
func SpamToken(s string) (string, bool) {
	lower := strings.ToLower(s)
	for _, token := range spamTokens {
		if strings.Contains(lower, token) {
			return token, true
		}
	}
	return "", false
}

// ExcessiveCaps reports whether a message longer than 20 characters is
// mostly shouting: more than 70% of its letters uppercase. Exactly 70%
// passes.
func ExcessiveCaps(s string) bool {
	if utf8.RuneCountInString(s) <= capsCheckMinLen {
		return false
	}

	var letters, upper int
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(upper)/float64(letters) > capsRatioLimit
}
