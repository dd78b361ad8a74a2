// Package models defines the data shapes exchanged with the HealthMate
// backend. JSON field names follow the backend contract and must not be
// changed independently of it.
package models

// UserProfile is the account record returned by the auth endpoints.
// The client treats it as opaque beyond presence of the fields it displays.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age,omitempty"`
}

// ProfileUpdate carries the mutable profile fields; zero values are omitted
// so a partial update leaves the rest untouched.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Age   int    `json:"age,omitempty"`
	Phone string `json:"phone,omitempty"`
}
