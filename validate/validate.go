package validate

import (
	"net/mail"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cast"
)

const (
	// BirthDateLayout is the only accepted birth date format (YYYY-MM-DD).
	BirthDateLayout = "2006-01-02"

	phoneLength = 9
)

var (
	ticketPattern = regexp.MustCompile(`^\d{9}[A-Z]{2}\d{3}$`)
	nonDigit      = regexp.MustCompile(`\D`)
)

/*
====================================
FORMAT CHECKS
====================================
*/

// IsEmail reports whether s is a bare addr-spec such as "user@example.com".
// Display names, angle brackets, surrounding whitespace and dotless domains
// are rejected.
func IsEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}

// IsPhone reports whether s looks like a 9 digit phone number.
//
// Spaces are removed and the value trimmed; the length check runs against
// that string, not against the digit-only form, so "91-234-56" passes while
// "912 345 678" (spaces removed: 9 digits) also passes. The digit-only form
// must be non-empty and not "0".
func IsPhone(s string) bool {
	stripped := strings.TrimSpace(strings.ReplaceAll(s, " ", ""))
	digits := nonDigit.ReplaceAllString(stripped, "")

	if len(stripped) != phoneLength {
		return false
	}
	if len(digits) > phoneLength {
		digits = digits[:phoneLength]
	}
	return digits != "" && digits != "0"
}

// MinLength reports whether the rune count of v is at least min. v may be a
// string or any value cast can render as one (integers, floats, []byte).
func MinLength(v any, min int) bool {
	n, ok := runeCount(v)
	return ok && n >= min
}

// MaxLength reports whether the rune count of v is at most max.
func MaxLength(v any, max int) bool {
	n, ok := runeCount(v)
	return ok && n <= max
}

func runeCount(v any) (int, bool) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return 0, false
	}
	return utf8.RuneCountInString(s), true
}

// IsTicketNumber reports whether s has the ticket shape: 9 digits, 2
// uppercase ASCII letters, 3 digits, no separators (e.g. "123456789AB123").
func IsTicketNumber(s string) bool {
	return ticketPattern.MatchString(s)
}

/*
====================================
BIRTH DATE
====================================
*/

// IsBirthDate reports whether date (YYYY-MM-DD) is a valid birth date for
// someone at least minYears old at now. Unparseable dates and dates after now
// return false.
func IsBirthDate(date string, minYears int, now time.Time) bool {
	born, err := time.ParseInLocation(BirthDateLayout, date, now.Location())
	if err != nil {
		return false
	}
	age, ok := Age(born, now)
	return ok && age >= minYears
}

// Age returns the number of whole years between born and now. ok is false
// when born is after now.
func Age(born, now time.Time) (years int, ok bool) {
	if born.After(now) {
		return 0, false
	}
	years = now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		years--
	}
	return years, true
}

// Validator binds the clock-dependent checks to a clock.
type Validator struct {
	clock clockwork.Clock
}

// New returns a Validator reading time from clock. A nil clock uses the real
// wall clock.
func New(clock clockwork.Clock) *Validator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Validator{clock: clock}
}

// BirthDate is IsBirthDate evaluated at the validator's current time.
func (v *Validator) BirthDate(date string, minYears int) bool {
	return IsBirthDate(date, minYears, v.clock.Now())
}

/*
====================================
EMPTINESS
====================================
*/

// NotEmpty reports whether v is non-empty under loose truthiness rules: nil,
// "", "0", numeric zero, false, nil pointers/interfaces and empty
// slices, maps, arrays and channels are all empty.
func NotEmpty(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		s := rv.String()
		return s != "" && s != "0"
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

/*
====================================
PATTERNS
====================================
*/

// Matches reports whether s matches pattern. pattern is either plain RE2
// syntax or a delimited form such as "/^[a-z]+$/i"; an invalid pattern never
// matches.
//
// Unlike PCRE, "$" matches only at the very end of s, never before a final
// newline: "/^\d+$/" rejects "123\n". Use the m modifier for per-line anchors.
func Matches(pattern, s string) bool {
	re, err := Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}
