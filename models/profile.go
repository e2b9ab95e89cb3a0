package models

import "time"

// Profile holds the contact and demographic record for a user. One per user.
type Profile struct {
	ID          string `bson:"id" json:"id"`
	UserID      string `bson:"userId" json:"userId"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	ParentEmail string `bson:"parentEmail" json:"parentEmail"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Address     string `bson:"address" json:"address"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
	ZipCode     string `bson:"zipCode" json:"zipCode"`
	Country     string `bson:"country" json:"country"`
	School      string `bson:"school" json:"school"`
	GradeLevel  string `bson:"gradeLevel" json:"gradeLevel"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// MissingFields returns the fields that must be filled before the profile
// counts as complete for application submission.
func (p *Profile) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"profile.name", p.Name},
		{"profile.email", p.Email},
		{"profile.parentEmail", p.ParentEmail},
		{"profile.phoneNumber", p.PhoneNumber},
		{"profile.address", p.Address},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Complete reports whether all required contact fields are present.
func (p *Profile) Complete() bool {
	return len(p.MissingFields()) == 0
}
