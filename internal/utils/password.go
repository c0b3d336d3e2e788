package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// BcryptHasher hashes passwords with bcrypt
type BcryptHasher struct {
	Cost int // bcrypt cost; zero means bcrypt.DefaultCost
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
