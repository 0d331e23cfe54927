// Copyright 2026 The Steward Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package identity

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password does not meet security requirements")
	ErrAccountLocked      = errors.New("account is locked")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvitationNotFound = errors.New("invitation not found or already used")
	ErrInvitationExists   = errors.New("a pending invitation already exists for this email")
	ErrInvalidInviteToken = errors.New("invitation token is invalid or expired")
)

// VerificationStatus tracks whether an account has completed its first
// authentication. Verified is terminal.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
)

// InvitationStatus values for pending invitations.
const (
	InvitationPending = "pending"
)

// User represents an admin account. A nil RoleID means no authority at all:
// the user cannot manage anyone and sees no restricted pages. CompanyIDs
// scopes which catalog resources the user may act on; empty means
// unrestricted.
type User struct {
	ID                  string
	Email               string
	Username            string
	FirstName           string
	LastName            string
	RoleID              *string
	CompanyIDs          []string
	VerificationStatus  VerificationStatus
	IsActive            bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Credentials represents user authentication credentials
type Credentials struct {
	UserID       string
	PasswordHash string
	UpdatedAt    time.Time
}

// Invitation pre-assigns a role and scope to an email address that has not
// authenticated yet. Consumed exactly once on acceptance.
type Invitation struct {
	ID         string
	Email      string
	RoleID     string
	CompanyIDs []string
	InviterID  string
	Status     string
	CreatedAt  time.Time
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*User, error)

	// Update updates user profile fields
	Update(ctx context.Context, user *User) error

	// UpdateRole replaces the user's role and company scope
	UpdateRole(ctx context.Context, userID string, roleID *string, companyIDs []string) (*User, error)

	// UpdateLockout updates user lockout status
	UpdateLockout(ctx context.Context, userID string, failedAttempts int, lockedUntil *time.Time) error

	// SetActive toggles the account's active flag
	SetActive(ctx context.Context, userID string, active bool) error

	// CountWithRole returns the number of users holding a role
	CountWithRole(ctx context.Context, roleID string) (int, error)

	// AddCredentials adds credentials for a user
	AddCredentials(ctx context.Context, credentials *Credentials) error

	// GetCredentials retrieves user credentials
	GetCredentials(ctx context.Context, userID string) (*Credentials, error)

	// UpdatePassword updates user password
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
}

// InvitationRepository defines the interface for invitation persistence.
// Email is unique among pending invitations; DeleteByEmail is the consumption
// primitive and must be atomic so the same email cannot be promoted twice.
type InvitationRepository interface {
	// Create creates a new invitation
	Create(ctx context.Context, inv *Invitation) error

	// GetByEmail retrieves the pending invitation for an email
	GetByEmail(ctx context.Context, email string) (*Invitation, error)

	// List retrieves all pending invitations
	List(ctx context.Context) ([]*Invitation, error)

	// DeleteByEmail removes the invitation for an email and reports whether a
	// row was actually deleted. Promotion proceeds only on true.
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}
