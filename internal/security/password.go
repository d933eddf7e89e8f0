package security

import "golang.org/x/crypto/bcrypt"

const minPasswordLength = 8

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

func PasswordTooShort(plain string) bool {
	return len(plain) < minPasswordLength
}
