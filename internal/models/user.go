package models

// User is a registered account in the credential file.
type User struct {
	// Username is the unique, case-sensitive login name.
	Username string

	// Name is the display name.
	Name string

	Email string

	// PasswordHash is the bcrypt hash of the password.
	PasswordHash string
}
