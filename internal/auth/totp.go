package auth

import (
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "Daystar Daycare"

// GenerateTOTP creates a new secret for accountName and the otpauth:// URL
// authenticator apps scan.
func GenerateTOTP(accountName string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTP checks a six digit code against secret with the default skew.
func ValidateTOTP(code, secret string) bool {
	if secret == "" {
		return false
	}
	return totp.Validate(strings.TrimSpace(code), secret)
}
