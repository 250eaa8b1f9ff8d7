package models

import (
	"encoding/json"
	"fmt"
)

// User is a registered account. UserName is the key of the persisted users
// object and is not repeated inside the record.
type User struct {
	ID                string    `json:"user_id"`
	UserName          string    `json:"-"`
	Credential        string    `json:"credential"`
	CreatedAt         Timestamp `json:"created_at"`
	PreferredLanguage Language  `json:"preferred_language"`
}

// UnmarshalJSON also accepts the legacy "password" key for the credential.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		Password *string `json:"password"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.Credential == "" && aux.Password != nil {
		u.Credential = *aux.Password
	}
	return nil
}

// Users maps username to account.
type Users map[string]*User

// ByID finds the account with the given id.
func (u Users) ByID(id string) (*User, bool) {
	for _, usr := range u {
		if usr.ID == id {
			return usr, true
		}
	}
	return nil, false
}

// Normalize restores UserName from the map keys after decoding.
func (u *Users) Normalize() error {
	if *u == nil {
		*u = Users{}
	}
	for name, usr := range *u {
		if usr == nil || usr.ID == "" {
			return fmt.Errorf("user %q: missing record", name)
		}
		usr.UserName = name
	}
	return nil
}
