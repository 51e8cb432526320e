package users

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleOwner = "OWNER"

	ProviderGoogle = "google"
	ProviderLocal  = "local"
)

// User is an identity record keyed by email.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	PhotoURL     string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	PhoneNumber  string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	Roles        []string           `bson:"roles" json:"roles"`
	Blocked      bool               `bson:"blocked" json:"blocked"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasRole reports whether the user carries any of roles.
func (u *User) HasRole(roles ...string) bool {
	for _, have := range u.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// IsAdmin reports whether the user may use the admin API.
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin, RoleOwner)
}

// SaveUserRequest for POST /users
type SaveUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"max=100"`
	PhotoURL     string `json:"photoUrl" binding:"omitempty,url"`
	PhoneNumber  string `json:"phoneNumber" binding:"omitempty,phone"`
	AuthProvider string `json:"authProvider" binding:"omitempty,oneof=google local"`
	Password     string `json:"password" binding:"omitempty,min=6,max=72"`
}
