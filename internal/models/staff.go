package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin     = "admin"
	RoleAffiliate = "affiliate"
)

// StaffUser is a back-office or affiliate account allowed to log in.
type StaffUser struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"passwordHash" json:"-"`
	Name         string              `bson:"name" json:"name"`
	Role         string              `bson:"role" json:"role"`
	AffiliateID  *primitive.ObjectID `bson:"affiliateId,omitempty" json:"affiliateId,omitempty"`
	IsActive     bool                `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
}
