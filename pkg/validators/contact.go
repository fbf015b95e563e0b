package validators

import (
	"errors"
	"regexp"
)

var (
	ErrFirstNameEmpty   = errors.New("no first name provided")
	ErrFirstNameTooLong = errors.New("first name must be at most 100 characters long")
	ErrLastNameEmpty    = errors.New("no last name provided")
	ErrLastNameTooLong  = errors.New("last name must be at most 100 characters long")
	ErrContactEmail     = errors.New("invalid contact email provided")
	ErrPhoneTooLong     = errors.New("phone must be at most 30 characters long")
	ErrNotesTooLong     = errors.New("notes must be at most 255 characters long")
	ErrDateFormat       = errors.New("date must match YYYY-MM-DD")
)

var (
	contactEmailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	contactDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ContactPayload is the request body shape shared by the contact
// create and update endpoints.
type ContactPayload struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Date      string  `json:"date"`
	Notes     *string `json:"notes"`
}

func ContactValidator(p *ContactPayload) error {
	if p.FirstName == "" {
		return ErrFirstNameEmpty
	}
	if len(p.FirstName) > 100 {
		return ErrFirstNameTooLong
	}

	if p.LastName == "" {
		return ErrLastNameEmpty
	}
	if len(p.LastName) > 100 {
		return ErrLastNameTooLong
	}

	if len(p.Email) > 50 || !contactEmailRe.MatchString(p.Email) {
		return ErrContactEmail
	}

	if len(p.Phone) > 30 {
		return ErrPhoneTooLong
	}

	if p.Notes != nil && len(*p.Notes) > 255 {
		return ErrNotesTooLong
	}

	if !contactDateRe.MatchString(p.Date) {
		return ErrDateFormat
	}

	return nil
}
