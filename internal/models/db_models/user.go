package db_models

import "strings"

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleDoctor UserRole = "DOCTOR"
	RoleStaff  UserRole = "STAFF"
)

// ParseRole canonicalizes a stored or submitted role string. "DENTIST" is an
// alias for DOCTOR left over from older data and is folded into the
// canonical spelling.
func ParseRole(s string) (UserRole, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ADMIN":
		return RoleAdmin, true
	case "DOCTOR", "DENTIST":
		return RoleDoctor, true
	case "STAFF":
		return RoleStaff, true
	}
	return "", false
}

// User is a back-office account. PasswordHash stays nil until first-time
// setup completes through the OTP exchange; OtpCode/OtpExpiresAt are set only
// while onboarding is pending and are cleared together.
type User struct {
	BaseModel
	Name         string
	Email        string   `gorm:"uniqueIndex"`
	PasswordHash *string  `json:"-"`
	Role         UserRole `gorm:"size:16;index"`
	Active       bool     `gorm:"default:true"`
	OtpCode      *string  `gorm:"size:6" json:"-"`
	OtpExpiresAt *int64   `json:"-"`

	Profile *DentistProfile `gorm:"foreignKey:UserID"`
}
