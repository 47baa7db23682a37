package helpers

import "golang.org/x/crypto/bcrypt"

// passwordCost trades login latency against brute-force resistance.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt digest stored in users.password_hash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches the stored digest.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
