package impl

import (
	"golang.org/x/crypto/bcrypt"
)

type PasswordServiceBcrypt struct {
	cost int
}

// NewPasswordServiceBcrypt uses bcrypt.DefaultCost when cost is out of range.
func NewPasswordServiceBcrypt(cost int) *PasswordServiceBcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceBcrypt{cost: cost}
}

func (p *PasswordServiceBcrypt) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *PasswordServiceBcrypt) Compare(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
