package model

import "time"

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // empty for external-provider accounts
	PhotoURL       *string   `json:"photo_url,omitempty"`
	AuthProvider   string    `json:"auth_provider"`
	ExternalID     *string   `json:"-"` // subject id at the identity provider
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
