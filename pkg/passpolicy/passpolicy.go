// Package passpolicy evaluates password strength at registration time. It is
// a pure rule engine: every rule is checked independently and all violations
// are reported together so the client can fix them in one pass.
package passpolicy

import "unicode"

// Rule identifies a single password requirement.
type Rule string

const (
	RuleMinLength Rule = "min_length" // at least MinLength characters
	RuleUppercase Rule = "uppercase"  // at least one uppercase letter
	RuleLowercase Rule = "lowercase"  // at least one lowercase letter
	RuleDigit     Rule = "digit"      // at least one digit
	RuleSymbol    Rule = "symbol"     // at least one non-alphanumeric character
)

// MinLength is the minimum acceptable password length in runes.
const MinLength = 8

// Describe returns a human-readable description for a rule, suitable for
// error payloads.
func Describe(r Rule) string {
	switch r {
	case RuleMinLength:
		return "must be at least 8 characters long"
	case RuleUppercase:
		return "must contain an uppercase letter"
	case RuleLowercase:
		return "must contain a lowercase letter"
	case RuleDigit:
		return "must contain a digit"
	case RuleSymbol:
		return "must contain a symbol"
	default:
		return string(r)
	}
}

// Evaluate returns the set of violated rules for password. An empty result
// means the password is acceptable. No rule short-circuits another.
func Evaluate(password string) []Rule {
	var (
		hasUpper bool
		hasLower bool
		hasDigit bool
		hasSymbol bool
		length   int
	)

	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	var violations []Rule
	if length < MinLength {
		violations = append(violations, RuleMinLength)
	}
	if !hasUpper {
		violations = append(violations, RuleUppercase)
	}
	if !hasLower {
		violations = append(violations, RuleLowercase)
	}
	if !hasDigit {
		violations = append(violations, RuleDigit)
	}
	if !hasSymbol {
		violations = append(violations, RuleSymbol)
	}
	return violations
}
