package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is lowered by tests; production keeps bcrypt's default.
var PasswordCost = bcrypt.DefaultCost

// HashPassword hashes an identity's optional password with bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored bcrypt hash
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
