package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account types a user can register as.
const (
	UserTypeBuyer     = "buyer"
	UserTypeSeller    = "seller"
	UserTypeAgent     = "agent"
	UserTypeDeveloper = "developer"
)

// UserTypes lists the accepted account types.
var UserTypes = []string{UserTypeBuyer, UserTypeSeller, UserTypeAgent, UserTypeDeveloper}

// Address holds a user's postal address.
type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// PriceRange bounds a user's property search preference.
type PriceRange struct {
	Min float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max float64 `bson:"max,omitempty" json:"max,omitempty"`
}

// NotificationPreferences controls which channels a user is contacted on.
type NotificationPreferences struct {
	Email bool `bson:"email" json:"email"`
	SMS   bool `bson:"sms" json:"sms"`
	Push  bool `bson:"push" json:"push"`
}

// Preferences holds a user's saved search preferences.
type Preferences struct {
	PropertyTypes []string                `bson:"propertyTypes,omitempty" json:"propertyTypes,omitempty"`
	PriceRange    PriceRange              `bson:"priceRange,omitempty" json:"priceRange,omitempty"`
	Locations     []string                `bson:"locations,omitempty" json:"locations,omitempty"`
	Notifications NotificationPreferences `bson:"notifications" json:"notifications"`
}

// User represents a user document in the users collection. The password field
// holds the bcrypt hash and is never serialized to JSON.
type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName       string               `bson:"firstName" json:"firstName"`
	LastName        string               `bson:"lastName" json:"lastName"`
	Email           string               `bson:"email" json:"email"`
	Phone           string               `bson:"phone" json:"phone"`
	Password        string               `bson:"password" json:"-"`
	UserType        string               `bson:"userType" json:"userType"`
	IsEmailVerified bool                 `bson:"isEmailVerified" json:"isEmailVerified"`
	Avatar          string               `bson:"avatar" json:"avatar"`
	Address         Address              `bson:"address,omitempty" json:"address,omitempty"`
	Preferences     Preferences          `bson:"preferences" json:"preferences"`
	SavedProperties []primitive.ObjectID `bson:"savedProperties" json:"savedProperties"`
	IsActive        bool                 `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// NewUser builds a user document with the schema defaults applied. The
// password is stored as given; hashing is the caller's explicit step.
func NewUser(firstName, lastName, email, phone, passwordHash, userType string) *User {
	if userType == "" {
		userType = UserTypeBuyer
	}
	now := time.Now().UTC()
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     NormalizeEmail(email),
		Phone:     phone,
		Password:  passwordHash,
		UserType:  userType,
		Address:   Address{Country: "Sri Lanka"},
		Preferences: Preferences{
			Notifications: NotificationPreferences{Email: true, SMS: false, Push: true},
		},
		SavedProperties: []primitive.ObjectID{},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// PublicUser is the user shape returned from API responses: the stored
// document with saved-property references resolved to full records.
type PublicUser struct {
	User
	SavedProperties []Property `json:"savedProperties"`
}
