// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and the transient design types passed between pipeline stages.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionTier is the billing plan of a user.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "FREE"
	TierPro        SubscriptionTier = "PRO"
	TierEnterprise SubscriptionTier = "ENTERPRISE"
)

// User owns brand profiles and generated posts. Until authentication exists
// every request acts as the single demo user.
type User struct {
	ID               uuid.UUID        `json:"id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"` // Never serialize the hash
	Name             string           `json:"name"`
	SubscriptionTier SubscriptionTier `json:"subscriptionTier"`
	CreditsRemaining int              `json:"creditsRemaining"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// HasCredits reports whether the user can still spend generation credits.
func (u *User) HasCredits() bool {
	return u.CreditsRemaining > 0
}
