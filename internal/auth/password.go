package auth

import "golang.org/x/crypto/bcrypt"

const defaultBcryptCost = 12

// HashPassword hashes with bcrypt; cost <= 0 falls back to the platform
// default of 12, matching what existing account hashes were created with.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = defaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
