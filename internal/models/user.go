package models

import "time"

// Principal is the authenticated identity issued by the auth provider.
// It is read-only to the application: created on sign-in, cleared on
// sign-out, never mutated here.
type Principal struct {
	UID         string `json:"uid" yaml:"uid"`
	Email       string `json:"email" yaml:"email"`
	DisplayName string `json:"displayName" yaml:"display_name"`
	PhotoURL    string `json:"photoUrl,omitempty" yaml:"photo_url,omitempty"`
}

// SecuritySettings holds the security sub-fields of a profile.
type SecuritySettings struct {
	RecoveryPhone      string    `json:"recoveryPhone,omitempty"`
	TwoFactorEnabled   bool      `json:"twoFactorEnabled"`
	TwoFactorMethod    string    `json:"twoFactorMethod,omitempty"`
	VerifiedDevices    []string  `json:"verifiedDevices,omitempty"`
	LastPasswordChange time.Time `json:"lastPasswordChange,omitempty"`
	LastEmailChange    time.Time `json:"lastEmailChange,omitempty"`
}

// Profile is the mutable application-owned record keyed by principal id.
// Its presence with ProfileComplete=true gates access to feature commands;
// it does not exist until onboarding has completed at least once.
type Profile struct {
	UID             string           `json:"uid"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Phone           string           `json:"phone,omitempty"`
	DateOfBirth     string           `json:"dateOfBirth,omitempty"`
	Gender          string           `json:"gender,omitempty"`
	Address         string           `json:"address,omitempty"`
	City            string           `json:"city,omitempty"`
	Country         string           `json:"country,omitempty"`
	Bio             string           `json:"bio,omitempty"`
	Interests       []string         `json:"interests,omitempty"`
	Notifications   bool             `json:"notifications"`
	AvatarURL       string           `json:"avatarUrl,omitempty"`
	ProfileComplete bool             `json:"profileComplete"`
	Security        SecuritySettings `json:"security"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// FullName returns the profile's display name.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
