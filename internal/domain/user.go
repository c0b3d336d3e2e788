package domain

import (
	"regexp"
	"strings"
)

const maxNameLength = 50

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z]{2,}$`)

// PasswordHasher turns raw passwords into stored hashes and checks them
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// User Model
type User struct {
	Base
	FirstName    string   `gorm:"size:50;not null" json:"first_name"`         // Given name
	LastName     string   `gorm:"size:50;not null" json:"last_name"`          // Family name
	Email        string   `gorm:"size:120;uniqueIndex;not null" json:"email"` // Unique login email
	PasswordHash string   `gorm:"size:128;not null" json:"-"`                 // Hashed password, never serialized
	IsAdmin      bool     `gorm:"not null;default:false" json:"is_admin"`     // Admin claim carried into tokens
	Places       []Place  `gorm:"foreignKey:UserID" json:"-"`                 // Owned places
	Reviews      []Review `gorm:"foreignKey:UserID" json:"-"`                 // Authored reviews
}

// UserParams is the raw input a User is built from
type UserParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// NewUser validates params and builds a User with a hashed password.
// No User is returned unless every rule passes.
func NewUser(p UserParams, hasher PasswordHasher) (*User, error) {
	first, err := ValidateName("first name", p.FirstName)
	if err != nil {
		return nil, err
	}
	last, err := ValidateName("last name", p.LastName)
	if err != nil {
		return nil, err
	}
	email, err := NormalizeEmail(p.Email)
	if err != nil {
		return nil, err
	}
	if p.Password == "" {
		return nil, Validationf("password is required")
	}
	hash, err := hasher.Hash(p.Password)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Msg: "password could not be hashed", Err: err}
	}
	return &User{
		Base:         newBase(),
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      p.IsAdmin,
	}, nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(hasher PasswordHasher, password string) bool {
	return hasher.Compare(u.PasswordHash, password) == nil
}

// ValidateName trims a name and checks it is present and short enough
func ValidateName(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", Validationf("%s is required", field)
	}
	if len(v) > maxNameLength {
		return "", Validationf("%s must be at most %d characters", field, maxNameLength)
	}
	return v, nil
}

// NormalizeEmail trims and lower-cases an email, rejecting malformed ones
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", Validationf("email is required")
	}
	if !emailPattern.MatchString(e) {
		return "", Validationf("invalid email format")
	}
	return e, nil
}
