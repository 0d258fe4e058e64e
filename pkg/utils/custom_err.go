package utils

import "errors"

var (
	// auth
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrPasswordNotSet     = errors.New("password has not been set up yet")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")

	// otp onboarding
	ErrOtpNotFound    = errors.New("no pending setup matches that email and code")
	ErrOtpExpired     = errors.New("otp code has expired")
	ErrOtpAlreadyUsed = errors.New("password has already been set for this account")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
	ErrMailDelivery   = errors.New("mail delivery failed")

	// billing
	ErrServiceNotFound    = errors.New("service not found")
	ErrMissingCustomPrice = errors.New("custom line item requires a unit price")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidDiscount    = errors.New("discount must not be negative")
	ErrVisitNotFound      = errors.New("visit not found")

	// catalog & clinic content
	ErrDuplicateServiceName  = errors.New("a service with that name already exists")
	ErrDentistNotFound       = errors.New("dentist not found")
	ErrClinicProfileNotFound = errors.New("clinic profile not configured")
	ErrFaqNotFound           = errors.New("faq entry not found")
	ErrGalleryImageNotFound  = errors.New("gallery image not found")

	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
)
