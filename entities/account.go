package entities

// Account is the single local account created by signup.
type Account struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}
