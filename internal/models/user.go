package models

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User owns places. Only the bcrypt hash of the password is kept.
type User struct {
	base
	email        string
	passwordHash string
	firstName    string
	lastName     string
}

var userFields = FieldSet[*User]{
	"password":   stringField((*User).SetPassword),
	"first_name": stringField(func(u *User, v string) error { u.firstName = v; return nil }),
	"last_name":  stringField(func(u *User, v string) error { u.lastName = v; return nil }),
}

// NewUser creates a [User] without a password; call [User.SetPassword] before persisting.
func NewUser(sequence int, email, firstName, lastName string) *User {
	return &User{base: newBase(sequence), email: email, firstName: firstName, lastName: lastName}
}

func (u *User) Email() string        { return u.email }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Kind() Kind           { return KindUser }

// SetPasswordHash stores an already hashed password, as loaded from storage.
func (u *User) SetPasswordHash(hash string) { u.passwordHash = hash }

// SetPassword hashes and stores a plaintext password.
func (u *User) SetPassword(plain string) error {
	if err := requireField("password", plain); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.passwordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(plain)) == nil
}

// Validate reports a missing email or password.
func (u *User) Validate() error {
	if err := requireField("email", u.email); err != nil {
		return err
	}
	return requireField("password", u.passwordHash)
}

// Apply sets the mutable fields of a user: password, first_name, last_name.
// The email is fixed once the account exists.
func (u *User) Apply(updates map[string]any) error {
	return userFields.Apply(u, updates)
}

// Dict returns the serialized form of the user, without the password.
func (u *User) Dict() map[string]any {
	d := u.dict(KindUser)
	d["email"] = u.email
	d["first_name"] = u.firstName
	d["last_name"] = u.lastName
	return d
}
