package usecase

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shandysiswandi/gocustomer/internal/pkg/clock"
	"github.com/shandysiswandi/gocustomer/internal/pkg/validator"
)

const minimumAge = 18

// CustomerInput is the candidate submitted on create and update.
// A zero DateOfBirth means the caller did not provide one.
type CustomerInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	DateOfBirth time.Time
	Address     string
}

// CustomerValidator holds the rule set applied to every customer write.
type CustomerValidator struct {
	rules *validator.Rules[CustomerInput]
	clock clock.Clocker
}

// NewCustomerValidator declares the customer rules. The clock is read on each
// Validate call, never at construction.
func NewCustomerValidator(clk clock.Clocker, v10 *validator.V10Validator) *CustomerValidator {
	cv := &CustomerValidator{
		rules: validator.NewRules[CustomerInput](),
		clock: clk,
	}

	validator.Field(cv.rules, "first_name", func(in CustomerInput) string { return in.FirstName }).
		Require(notBlank, "first name is required").
		Require(lengthBetween(2, 50), "first name must be between 2 and 50 characters")

	validator.Field(cv.rules, "last_name", func(in CustomerInput) string { return in.LastName }).
		Require(notBlank, "last name is required").
		Require(lengthBetween(2, 50), "last name must be between 2 and 50 characters")

	validator.Field(cv.rules, "email", func(in CustomerInput) string { return in.Email }).
		Require(notBlank, "email is required").
		Require(func(v string) bool { return v10.Is(v, "email") }, "email must be a valid email address")

	validator.Field(cv.rules, "phone_number", func(in CustomerInput) string { return in.PhoneNumber }).
		Require(notBlank, "phone number is required").
		Require(func(v string) bool { return blank(v) || v10.Is(v, "phone") }, "phone number must contain between 10 and 15 digits")

	validator.Field(cv.rules, "date_of_birth", func(in CustomerInput) time.Time { return in.DateOfBirth }).
		Require(func(v time.Time) bool { return !v.IsZero() }, "date of birth is required").
		Require(cv.inPast, "date of birth must be in the past").
		Require(cv.adult, "customer must be at least 18 years old")

	validator.Field(cv.rules, "address", func(in CustomerInput) string { return in.Address }).
		Require(notBlank, "address is required").
		Require(lengthAtLeast(10), "address must be at least 10 characters")

	return cv
}

// Validate runs every customer rule against in.
func (cv *CustomerValidator) Validate(in CustomerInput) validator.Result {
	return cv.rules.Validate(in)
}

// Table exposes the declared rules in evaluation order.
func (cv *CustomerValidator) Table() []validator.Rule[CustomerInput] {
	return cv.rules.Table()
}

func (cv *CustomerValidator) inPast(dob time.Time) bool {
	return dob.Before(cv.clock.Now())
}

// adult compares calendar dates in the location of dob, so the check flips
// exactly on the 18th birthday.
func (cv *CustomerValidator) adult(dob time.Time) bool {
	now := cv.clock.Now().In(dob.Location())
	cutoff := subtractYears(dateOf(now), minimumAge)

	return !dateOf(dob).After(cutoff)
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func notBlank(v string) bool {
	return !blank(v)
}

// Length and phone format rules leave blank values to the required rule.
func lengthBetween(minLen, maxLen int) func(string) bool {
	return func(v string) bool {
		if blank(v) {
			return true
		}
		n := utf8.RuneCountInString(v)
		return n >= minLen && n <= maxLen
	}
}

func lengthAtLeast(minLen int) func(string) bool {
	return func(v string) bool {
		return blank(v) || utf8.RuneCountInString(v) >= minLen
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// subtractYears moves t back n calendar years. Feb 29 lands on Feb 28 when
// the target year is not a leap year; time.AddDate would roll into March.
func subtractYears(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	y -= n
	if m == time.February && d == 29 && !isLeap(y) {
		d = 28
	}

	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
