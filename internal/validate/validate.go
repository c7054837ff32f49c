// Package validate holds the local input checks run before any request is
// sent. Every validator returns a Result and never panics.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Result is the outcome of one check. Message is ready for display.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(message string) Result { return Result{Message: message} }

var (
	phonePattern   = regexp.MustCompile(`^1[3-9]\d{9}$`)
	idCardPattern  = regexp.MustCompile(`^\d{17}[\dXx]$`)
	digitsPattern  = regexp.MustCompile(`^\d+$`)
	amountPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	smsCodePattern = regexp.MustCompile(`^\d{4,6}$`)
)

// Phone checks a mainland mobile number.
func Phone(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("please enter your phone number")
	}
	if !phonePattern.MatchString(value) {
		return fail("please enter a valid 11-digit phone number")
	}
	return ok()
}

var (
	idCardWeights    = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}
	idCardCheckCodes = "10X98765432"
)

// IDCardCheckDigit computes the GB 11643 check character for the first 17
// digits. It returns 0 if the input is not 17 digits.
func IDCardCheckDigit(first17 string) byte {
	if len(first17) != 17 || !digitsPattern.MatchString(first17) {
		return 0
	}
	sum := 0
	for i := 0; i < 17; i++ {
		sum += int(first17[i]-'0') * idCardWeights[i]
	}
	return idCardCheckCodes[sum%11]
}

// IDCard checks an 18-character resident ID number: format and check digit.
func IDCard(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("please enter your ID card number")
	}
	if !idCardPattern.MatchString(value) {
		return fail("ID card number must be 17 digits followed by a digit or X")
	}
	want := IDCardCheckDigit(value[:17])
	got := value[17]
	if got == 'x' {
		got = 'X'
	}
	if got != want {
		return fail("ID card number is invalid")
	}
	return ok()
}

// BankCard checks a 12 to 19 digit card number with the Luhn checksum.
// Spaces are ignored.
func BankCard(value string) Result {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if value == "" {
		return fail("please enter your bank card number")
	}
	if !digitsPattern.MatchString(value) || len(value) < 12 || len(value) > 19 {
		return fail("bank card number must be 12 to 19 digits")
	}
	if !luhn(value) {
		return fail("bank card number is invalid")
	}
	return ok()
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// AmountRule bounds an amount. A zero Min or Max means no bound on that
// side. Scale is the maximum number of decimal places.
type AmountRule struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Scale int32
}

// MoneyRule accepts any positive amount with at most two decimals.
var MoneyRule = AmountRule{Scale: 2}

// Amount checks a positive decimal amount typed by the user.
func Amount(value string, rule AmountRule) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("please enter an amount")
	}
	if !amountPattern.MatchString(value) {
		return fail("please enter a valid amount")
	}
	if idx := strings.IndexByte(value, '.'); idx >= 0 && int32(len(value)-idx-1) > rule.Scale {
		if rule.Scale == 0 {
			return fail("amount must be a whole number")
		}
		return fail("amount can have at most " + strconv.Itoa(int(rule.Scale)) + " decimal places")
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fail("please enter a valid amount")
	}
	if !d.IsPositive() {
		return fail("amount must be greater than 0")
	}
	if !rule.Min.IsZero() && d.LessThan(rule.Min) {
		return fail("amount must be at least " + rule.Min.String())
	}
	if !rule.Max.IsZero() && d.GreaterThan(rule.Max) {
		return fail("amount must not exceed " + rule.Max.String())
	}
	return ok()
}

// Password checks length in characters.
func Password(value string, minLen, maxLen int) Result {
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return fail("please enter a password")
	}
	if n < minLen || n > maxLen {
		return fail("password must be " + strconv.Itoa(minLen) + " to " + strconv.Itoa(maxLen) + " characters")
	}
	return ok()
}

// PayPassword is a six digit payment PIN.
func PayPassword(value string) Result {
	if value == "" {
		return fail("please enter your payment password")
	}
	if len(value) != 6 || !digitsPattern.MatchString(value) {
		return fail("payment password must be 6 digits")
	}
	return ok()
}

// Nickname checks a display name of 1 to 20 characters.
func Nickname(value string) Result {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	if n == 0 {
		return fail("please enter a nickname")
	}
	if n > 20 {
		return fail("nickname must be at most 20 characters")
	}
	return ok()
}

// RealName checks a legal name of 2 to 30 characters.
func RealName(value string) Result {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 {
		return fail("please enter your real name")
	}
	if n < 2 || n > 30 {
		return fail("real name must be 2 to 30 characters")
	}
	return ok()
}

// SMSCode checks a 4 to 6 digit verification code.
func SMSCode(value string) Result {
	value = strings.TrimSpace(value)
	if value == "" {
		return fail("please enter the verification code")
	}
	if !smsCodePattern.MatchString(value) {
		return fail("verification code must be 4 to 6 digits")
	}
	return ok()
}

// Required fails when value is blank. label names the field in the message.
func Required(value, label string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("please enter " + label)
	}
	return ok()
}

