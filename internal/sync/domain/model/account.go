package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LastPulledDates tracks the per-object high-water marks of the last
// successful sync for one account. A zero value means the object type
// has never been synced.
type LastPulledDates struct {
	Meetings  time.Time `bson:"meetings,omitempty" json:"meetings,omitempty"`
	Contacts  time.Time `bson:"contacts,omitempty" json:"contacts,omitempty"`
	Companies time.Time `bson:"companies,omitempty" json:"companies,omitempty"`
}

// Account identifies one CRM tenant (hub) and carries its OAuth
// credentials and sync watermarks. Accounts are stored in the
// "accounts" collection and mutated only through AccountRepository.
type Account struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HubID           string             `bson:"hub_id" json:"hubId"`
	AccessToken     string             `bson:"access_token" json:"-"`
	RefreshToken    string             `bson:"refresh_token" json:"-"`
	TokenExpiresAt  time.Time          `bson:"token_expires_at" json:"tokenExpiresAt"`
	LastPulledDates LastPulledDates    `bson:"last_pulled_dates" json:"lastPulledDates"`

	// MeetingFilter is an optional CEL expression evaluated per meeting;
	// meetings for which it yields false are excluded from the sync.
	MeetingFilter string `bson:"meeting_filter,omitempty" json:"meetingFilter,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TokenExpired reports whether the account's access token is stale at
// the given instant.
func (a *Account) TokenExpired(now time.Time) bool {
	return !a.TokenExpiresAt.IsZero() && now.After(a.TokenExpiresAt)
}
