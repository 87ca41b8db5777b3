package passpolicy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     []Rule
	}{
		{
			name:     "acceptable password",
			password: "Str0ng!Pw",
			want:     nil,
		},
		{
			name:     "short lowercase only",
			password: "abc",
			want:     []Rule{RuleMinLength, RuleUppercase, RuleDigit, RuleSymbol},
		},
		{
			name:     "all rules violated",
			password: "",
			want:     []Rule{RuleMinLength, RuleUppercase, RuleLowercase, RuleDigit, RuleSymbol},
		},
		{
			name:     "missing symbol only",
			password: "Abcdefg1",
			want:     []Rule{RuleSymbol},
		},
		{
			name:     "missing digit only",
			password: "Abcdefg!",
			want:     []Rule{RuleDigit},
		},
		{
			name:     "missing uppercase only",
			password: "abcdefg1!",
			want:     []Rule{RuleUppercase},
		},
		{
			name:     "missing lowercase only",
			password: "ABCDEFG1!",
			want:     []Rule{RuleLowercase},
		},
		{
			name:     "long but only symbols",
			password: "!!!!!!!!",
			want:     []Rule{RuleUppercase, RuleLowercase, RuleDigit},
		},
		{
			name:     "unicode letters count",
			password: "Пароль12!",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Evaluate(tt.password))
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	t.Parallel()

	// Same input, same output, no state between calls.
	first := Evaluate("abc")
	second := Evaluate("abc")
	require.Equal(t, first, second)
}

func TestDescribeCoversAllRules(t *testing.T) {
	t.Parallel()

	for _, r := range []Rule{RuleMinLength, RuleUppercase, RuleLowercase, RuleDigit, RuleSymbol} {
		require.NotEqual(t, string(r), Describe(r), "every rule needs a description")
	}
}
