package user

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MaxUserNameLen = 64
	MaxEmailLen    = 254
	MinPasswordLen = 1
	MaxPasswordLen = 256
)

// Validator checks user supplied fields before anything is hashed or stored.
type Validator interface {
	ValidateCreate(req CreateRequest) error
	ValidatePatch(p Patch) error
	ValidateUserName(name string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type FieldValidator struct{}

func NewValidator() *FieldValidator {
	return &FieldValidator{}
}

func (v *FieldValidator) ValidateCreate(req CreateRequest) error {
	if err := v.ValidateUserName(req.UserName); err != nil {
		return fmt.Errorf("userName: %w", err)
	}
	if err := v.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	if err := v.ValidatePassword(req.Password); err != nil {
		return fmt.Errorf("password: %w", err)
	}
	return nil
}

func (v *FieldValidator) ValidatePatch(p Patch) error {
	if p.UserName != nil {
		if err := v.ValidateUserName(*p.UserName); err != nil {
			return fmt.Errorf("userName: %w", err)
		}
	}
	if p.Email != nil {
		if err := v.ValidateEmail(*p.Email); err != nil {
			return fmt.Errorf("email: %w", err)
		}
	}
	if p.Password != nil {
		if err := v.ValidatePassword(*p.Password); err != nil {
			return fmt.Errorf("password: %w", err)
		}
	}
	return nil
}

func (v *FieldValidator) ValidateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("must not be blank")
	}
	if utf8.RuneCountInString(name) > MaxUserNameLen {
		return fmt.Errorf("must be at most %d characters", MaxUserNameLen)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("must not contain control characters")
		}
	}
	return nil
}

func (v *FieldValidator) ValidateEmail(email string) error {
	if len(email) > MaxEmailLen {
		return fmt.Errorf("must be at most %d characters", MaxEmailLen)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("must be a bare address like name@example.com")
	}
	return nil
}

func (v *FieldValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("must be at least %d characters", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("must be at most %d bytes", MaxPasswordLen)
	}
	return nil
}
