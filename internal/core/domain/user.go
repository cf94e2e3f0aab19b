package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Role is the closed set of role tags an Identity may carry.
// RoleNone marks an identity with no assigned role and is encoded as JSON null.
type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Known reports whether r is one of the concrete role tags.
func (r Role) Known() bool {
	return r == RoleCustomer || r == RoleAdmin
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

func (r Role) MarshalJSON() ([]byte, error) {
	if r == RoleNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = RoleNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Role(s)
	return nil
}

// Identity is the authenticated user record held by the client session.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Role     Role   `json:"role"`
}

// Credentials are submitted by the login form.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegistrationRequest is submitted by the registration form. PasswordConfirmation
// must equal Password before the request is handed to the session manager.
type RegistrationRequest struct {
	Username             string `json:"username" form:"username" validate:"required"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	Password             string `json:"password" form:"password" validate:"required"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,eqfield=Password"`
	Address              string `json:"address" form:"address" validate:"required"`
}

// Signup is the registration payload sent to the auth service. It has no
// password confirmation field, so the confirmation can never be transmitted.
type Signup struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// Signup strips the confirmation from the request.
func (r RegistrationRequest) Signup() Signup {
	return Signup{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Address:  r.Address,
	}
}

// Account is the server-side record kept by the reference auth service.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity projects the account onto the client-visible identity.
func (a *Account) Identity() *Identity {
	return &Identity{
		Username: a.Username,
		Email:    a.Email,
		Address:  a.Address,
		Role:     a.Role,
	}
}
