package domain

// User is a directory entry able to log in.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// Identity returns the token subject for the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

// Identity is a resolved caller as seen by the token service.
type Identity struct {
	ID       string
	Username string
}

// Credentials are submitted login values.
type Credentials struct {
	Username string
	Password string
}
