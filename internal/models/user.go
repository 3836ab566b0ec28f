package models

// User represents a registered user account.
//
// The struct doubles as the view record returned by the service layer:
// both the REST and Connect bindings serialize it as-is, so the JSON tags
// define the public wire shape.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique handle chosen by the user.
	Username string `json:"username"`

	// Email is the user's email address (unique).
	Email string `json:"email"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
