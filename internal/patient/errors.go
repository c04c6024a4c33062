package patient

import "errors"

var (
	ErrMissingFirstName   = errors.New("first name is required")
	ErrMissingLastName    = errors.New("last name is required")
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingPhone       = errors.New("phone is required")
	ErrMissingDateOfBirth = errors.New("date of birth is required")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidBloodType   = errors.New("invalid blood type")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)
