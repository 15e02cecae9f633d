package model

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field constraints mirrored from the document schemas. Validation runs as an
// explicit step in the handlers, decoupled from persistence; each function
// returns the full list of human-readable violation messages.

const MinPasswordLength = 6

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the email matches the schema pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidUserType reports whether t is one of the accepted account types.
func ValidUserType(t string) bool {
	for _, known := range UserTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SignupInput carries the fields accepted at registration.
type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	UserType  string `json:"userType"`
}

// Validate checks the signup input against the user schema constraints.
func (in *SignupInput) Validate() []string {
	var errs []string

	errs = appendNameErrors(errs, "First name", in.FirstName)
	errs = appendNameErrors(errs, "Last name", in.LastName)

	if strings.TrimSpace(in.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !ValidEmail(NormalizeEmail(in.Email)) {
		errs = append(errs, "Please enter a valid email")
	}

	if strings.TrimSpace(in.Phone) == "" {
		errs = append(errs, "Phone number is required")
	} else if !phonePattern.MatchString(in.Phone) {
		errs = append(errs, "Please enter a valid phone number")
	}

	if in.Password == "" {
		errs = append(errs, "Password is required")
	} else if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		errs = append(errs, "Password must be at least 6 characters")
	}

	if in.UserType != "" && !ValidUserType(in.UserType) {
		errs = append(errs, "User type must be one of buyer, seller, agent, developer")
	}

	return errs
}

// ProfileUpdateInput carries the fields a user may change through the profile
// endpoint. Email and password changes go through their dedicated operations.
type ProfileUpdateInput struct {
	FirstName   *string      `json:"firstName"`
	LastName    *string      `json:"lastName"`
	Phone       *string      `json:"phone"`
	Avatar      *string      `json:"avatar"`
	UserType    *string      `json:"userType"`
	Address     *Address     `json:"address"`
	Preferences *Preferences `json:"preferences"`
}

// Validate checks only the fields present in the partial update.
func (in *ProfileUpdateInput) Validate() []string {
	var errs []string

	if in.FirstName != nil {
		errs = appendNameErrors(errs, "First name", *in.FirstName)
	}
	if in.LastName != nil {
		errs = appendNameErrors(errs, "Last name", *in.LastName)
	}
	if in.Phone != nil {
		if strings.TrimSpace(*in.Phone) == "" {
			errs = append(errs, "Phone number is required")
		} else if !phonePattern.MatchString(*in.Phone) {
			errs = append(errs, "Please enter a valid phone number")
		}
	}
	if in.UserType != nil && !ValidUserType(*in.UserType) {
		errs = append(errs, "User type must be one of buyer, seller, agent, developer")
	}

	return errs
}

// PropertyInput carries the fields for creating or replacing a property.
type PropertyInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"imageUrl"`
}

// Validate checks that every required property field is present.
func (in *PropertyInput) Validate() []string {
	var errs []string

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "Title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "Description is required")
	}
	if in.Price <= 0 {
		errs = append(errs, "Price must be a positive number")
	}
	if strings.TrimSpace(in.Location) == "" {
		errs = append(errs, "Location is required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		errs = append(errs, "Image URL is required")
	}

	return errs
}

func appendNameErrors(errs []string, field, value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return append(errs, field+" is required")
	}
	if utf8.RuneCountInString(trimmed) < 2 {
		return append(errs, field+" must be at least 2 characters")
	}
	return errs
}
