package domain

import (
	"errors"
	"time"
)

// Role is the closed set of authorization levels a principal can hold.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleUser          Role = "user"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleAdministrator || r == RoleUser
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("duplicate user")
	ErrPasswordAlreadySet = errors.New("password already set")
	ErrInvalidToken       = errors.New("invalid password token")
)

// User models a persisted account. Email is stored lowercased and is unique.
// An empty PasswordHash means the password has not been set yet; such accounts
// cannot authenticate until the set-password flow completes.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	CreatedAt    time.Time `bson:"created_at" json:"creation_date"`
	Email        string    `bson:"email" json:"email"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	Role         Role      `bson:"role" json:"role"`
	Enabled      bool      `bson:"enabled" json:"enabled"`
}

// AuthInfo is the identity payload returned by GET /auth.
type AuthInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Principal is a resolved authenticated identity. There are exactly two
// implementations: SuperAdmin (configured, never persisted) and UserPrincipal
// (backed by a User document).
type Principal interface {
	// UserID returns the persisted user id, or "" for the super admin.
	UserID() string
	Role() Role
	AuthInfo() AuthInfo
}

// SuperAdminName is the fixed identifier the super admin logs in with.
const SuperAdminName = "admin"

// SuperAdmin is the singleton configured administrator. It carries no state;
// its password lives in configuration and is checked by the auth service.
type SuperAdmin struct{}

func (SuperAdmin) UserID() string { return "" }

func (SuperAdmin) Role() Role { return RoleAdministrator }

func (SuperAdmin) AuthInfo() AuthInfo {
	return AuthInfo{
		ID:        "",
		Email:     SuperAdminName,
		Role:      RoleAdministrator,
		FirstName: "Admin",
		LastName:  "",
	}
}

// UserPrincipal adapts a persisted User to the Principal interface.
type UserPrincipal struct {
	User *User
}

func (p UserPrincipal) UserID() string { return p.User.ID }

func (p UserPrincipal) Role() Role { return p.User.Role }

func (p UserPrincipal) AuthInfo() AuthInfo {
	return AuthInfo{
		ID:        p.User.ID,
		Email:     p.User.Email,
		Role:      p.User.Role,
		FirstName: p.User.FirstName,
		LastName:  p.User.LastName,
	}
}
