package postgres

import (
	"regexp"
	"testing"
)

func TestGenVerificationCode(t *testing.T) {
	re := regexp.MustCompile(`^\d{5}$`)
	for i := 0; i < 100; i++ {
		code := genVerificationCode()
		if !re.MatchString(code) {
			t.Fatalf("code %q is not exactly 5 digits", code)
		}
	}
}
