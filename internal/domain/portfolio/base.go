package portfolio

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SingletonID is the id given to the first Profile or Status row.
var SingletonID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

var (
	ErrFieldRequired = errors.New("field is required")
	ErrInvalidURL    = errors.New("must be an absolute URL")
	ErrInvalidEmail  = errors.New("must be a plain email address")
)

type Base struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) EntityID() uuid.UUID {
	return b.ID
}

func (b *Base) SetEntityID(id uuid.UUID) {
	b.ID = id
}

func (b *Base) Timestamps() (created, updated time.Time) {
	return b.CreatedAt, b.UpdatedAt
}

func (b *Base) SetTimestamps(created, updated time.Time) {
	b.CreatedAt = created
	b.UpdatedAt = updated
}

type requiredField struct {
	name  string
	value string
}

func required(name, value string) requiredField {
	return requiredField{name: name, value: value}
}

func checkRequired(fields ...requiredField) error {
	var errs []error
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, ErrFieldRequired))
		}
	}
	return errors.Join(errs...)
}

// checkURL accepts empty values. mailto: and similar opaque URLs pass.
func checkURL(name, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return fmt.Errorf("%s: %w", name, ErrInvalidURL)
	}
	return nil
}

// checkEmail accepts empty values and rejects display-name forms.
func checkEmail(name, value string) error {
	if value == "" {
		return nil
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return fmt.Errorf("%s: %w", name, ErrInvalidEmail)
	}
	return nil
}

func trim(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
