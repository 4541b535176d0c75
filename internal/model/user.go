package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account document in the `users` collection.
// HashedPassword never leaves the storage boundary: handlers build
// their own response types and the json tag is "-" as a second fence.
//
// Fields:
//  ID             – store-generated identifier, immutable.
//  Email          – unique, stored lowercase for case-insensitive lookup.
//  FullName       – display name.
//  HashedPassword – bcrypt digest of the account password.
//  IsActive       – inactive accounts cannot authenticate or act.
//  IsSuperuser    – superusers may act on accounts other than their own.
//  CreatedAt      – UTC creation timestamp.
//  UpdatedAt      – UTC timestamp, refreshed on every successful update.
type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string        `bson:"email" json:"email"`
	FullName       string        `bson:"full_name" json:"full_name"`
	HashedPassword string        `bson:"hashed_password" json:"-"`
	IsActive       bool          `bson:"is_active" json:"is_active"`
	IsSuperuser    bool          `bson:"is_superuser" json:"is_superuser"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updated_at"`
}

// HexID returns the identifier as the opaque hex string used everywhere
// outside the store adapter.
func (u *User) HexID() string { return u.ID.Hex() }
