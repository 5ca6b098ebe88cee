package service

type PasswordService interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}
