package domain

import "time"

// User is the authenticated identity plus its profile row.
type User struct {
	Id        UserId    `json:"id"`
	Email     Email     `json:"email,omitempty"`
	PassHash  string    `json:"-"`
	Username  Username  `json:"username"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

type Credentials struct {
	Email    Email
	Password Password
}

// RegistrationData travels handler -> service -> storage.
type RegistrationData struct {
	Email    Email
	Password Password
	Username Username
}
