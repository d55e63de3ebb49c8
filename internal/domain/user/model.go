package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Password  string    `json:"password" doc:"Hex encoded PBKDF2-SHA512 hash"`
	Salt      string    `json:"salt" doc:"Hex encoded salt the hash was derived with"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	UserName string `json:"userName" minLength:"1" maxLength:"64"`
	Email    string `json:"email" minLength:"3" maxLength:"254"`
	Password string `json:"password" minLength:"1"`
}

// Patch lists the mutable user fields. Nil fields are left untouched.
// Setting Password re-salts the account.
type Patch struct {
	UserName *string `json:"userName,omitempty" minLength:"1" maxLength:"64"`
	Email    *string `json:"email,omitempty" minLength:"3" maxLength:"254"`
	Password *string `json:"password,omitempty" minLength:"1"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
