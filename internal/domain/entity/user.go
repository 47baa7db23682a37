package entity

import "time"

// Language is the user's preferred language for emails and localized copy.
type Language int

const (
	LanguageEnglish Language = 1
	LanguageSpanish Language = 2
)

func (l Language) String() string {
	if l == LanguageSpanish {
		return "es"
	}
	return "en"
}

// Fixed role set. Role names are stored denormalized on the user row and
// resolved against the roles table for display.
const (
	RoleSuperAdmin        = "SuperAdmin"
	RoleAdmin             = "Admin"
	RoleSupport           = "Support"
	RoleUser              = "User"
	RoleSupportManager    = "SupportManager"
	RoleSupportTechnician = "SupportTechnician"
)

// KnownRoles lists every role the system recognizes, in seed order.
var KnownRoles = []string{
	RoleSuperAdmin,
	RoleAdmin,
	RoleSupport,
	RoleUser,
	RoleSupportManager,
	RoleSupportTechnician,
}

// IsKnownRole reports whether name belongs to the fixed role set.
func IsKnownRole(name string) bool {
	for _, r := range KnownRoles {
		if r == name {
			return true
		}
	}
	return false
}

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserName     string   `gorm:"size:100;not null;uniqueIndex"`
	Email        string   `gorm:"size:255;not null;uniqueIndex"`
	PhoneNumber  string   `gorm:"size:30"`
	FullName     string   `gorm:"size:255"`
	Language     Language `gorm:"default:1"`
	Role         string   `gorm:"size:50;default:'User'"`
	PasswordHash string   `gorm:"not null"`
	Locked       bool     `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role is a lookup record for the fixed role set.
type Role struct {
	ID        string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
