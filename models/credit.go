package models

import "time"

// CreditBalance is the triple of credit counters mirrored between the server
// record and the client's local cache. The local copy is overwritten wholesale
// on every successful sync (last writer wins, no merge logic).
type CreditBalance struct {
	// Available is the number of credits that can still be spent.
	Available int64 `json:"available_credits"`

	// Used is the lifetime number of credits spent.
	Used int64 `json:"used_credits"`

	// TotalEarned is the lifetime number of credits granted.
	TotalEarned int64 `json:"total_credits_earned"`

	// LastUpdated is the server-side timestamp of the last counter mutation.
	LastUpdated time.Time `json:"last_updated"`
}

// CreditAward is an append-only audit record of a single credit grant.
// Awards are written for admin grants and purchase grants; they are never
// mutated or deleted.
type CreditAward struct {
	// AwardID is the internal unique identifier of the audit record.
	AwardID int64 `json:"award_id"`

	// UserID identifies the account that received the grant.
	UserID int64 `json:"user_id"`

	// UserEmail duplicates the recipient's email at grant time so the audit
	// trail stays readable even if the account's email later changes.
	UserEmail string `json:"user_email"`

	// Amount is the number of credits granted. Always positive.
	Amount int64 `json:"amount"`

	// Reason is a short human-readable description of the grant
	// (e.g. "starting grant", "credit pack purchase", "admin adjustment").
	Reason string `json:"reason"`

	// AdminAction reports whether the grant was initiated by an
	// administrator rather than by the user's own purchase.
	AdminAction bool `json:"admin_action"`

	// CreatedAt is the timestamp the award was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the CreditAward model.
func (a CreditAward) TableName() string {
	return "credit_awards"
}

// AdminStats aggregates account and credit figures across the whole user
// collection. The numbers are produced by folding over every user record.
type AdminStats struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	BlockedUsers  int64 `json:"blocked_users"`
	VerifiedUsers int64 `json:"verified_users"`

	TotalAvailableCredits int64 `json:"total_available_credits"`
	TotalUsedCredits      int64 `json:"total_used_credits"`
	TotalCreditsEarned    int64 `json:"total_credits_earned"`
}
