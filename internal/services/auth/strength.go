package auth

// Strength is a coarse password rating shown while typing
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Label is the text shown under the password field
func (s Strength) Label() string {
	switch s {
	case StrengthStrong:
		return "Strong password"
	case StrengthMedium:
		return "Medium strength"
	default:
		return "Weak password"
	}
}

// PasswordStrength scores one point each for length >= 8, a lowercase
// letter, an uppercase letter, a digit and a symbol. Under 3 is weak,
// 5 is strong.
func PasswordStrength(password string) Strength {
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}

	score := 0
	for _, ok := range []bool{len(password) >= 8, lower, upper, digit, other} {
		if ok {
			score++
		}
	}

	switch {
	case score < 3:
		return StrengthWeak
	case score < 5:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
