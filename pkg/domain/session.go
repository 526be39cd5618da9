package domain

// User is the signed-in reader.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the result of a login or register call.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Active reports whether the session carries a token.
func (s Session) Active() bool {
	return s.Token != ""
}
