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
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/stewardhq/steward/internal/audit"
	"github.com/stewardhq/steward/internal/id"
)

// PasswordHasher handles password hashing using Argon2id
type PasswordHasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewPasswordHasher creates a new password hasher with Argon2id
func NewPasswordHasher(memory, iterations uint32, parallelism uint8, saltLength, keyLength uint32) *PasswordHasher {
	return &PasswordHasher{
		memory:      memory,
		iterations:  iterations,
		parallelism: parallelism,
		saltLength:  saltLength,
		keyLength:   keyLength,
	}
}

// Hash hashes a password using Argon2id
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		h.iterations,
		h.memory,
		h.parallelism,
		h.keyLength,
	)

	// Encode as: $argon2id$v=19$m=memory,t=iterations,p=parallelism$salt$hash
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)

	return encoded, nil
}

// Verify verifies a password against an encoded hash
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	// Format: $argon2id$v=19$m=65536,t=3,p=4$salt$hash
	sections := strings.Split(strings.TrimPrefix(encodedHash, "$"), "$")
	if len(sections) != 5 || sections[0] != "argon2id" {
		return false, fmt.Errorf("invalid hash format: got %d sections", len(sections))
	}

	var version int
	if _, err := fmt.Sscanf(sections[1], "v=%d", &version); err != nil {
		return false, fmt.Errorf("invalid version: %w", err)
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("invalid parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	actualHash := argon2.IDKey(
		[]byte(password),
		salt,
		iterations,
		memory,
		parallelism,
		uint32(len(expectedHash)),
	)

	// Constant-time comparison
	if len(actualHash) != len(expectedHash) {
		return false, nil
	}
	var diff byte
	for i := range actualHash {
		diff |= actualHash[i] ^ expectedHash[i]
	}
	return diff == 0, nil
}

// Service provides account and invitation business logic. It performs no
// authorization itself; the transport layer must have cleared mutations with
// the rbac engine before calling in.
type Service struct {
	repo               UserRepository
	invitations        InvitationRepository
	hasher             *PasswordHasher
	tokens             *InviteTokenIssuer
	auditLogger        audit.Logger
	lockoutMaxAttempts int
	lockoutDuration    time.Duration
}

// NewService creates a new identity service
func NewService(
	repo UserRepository,
	invitations InvitationRepository,
	hasher *PasswordHasher,
	tokens *InviteTokenIssuer,
	auditLogger audit.Logger,
	lockoutMaxAttempts int,
	lockoutDuration time.Duration,
) *Service {
	return &Service{
		repo:               repo,
		invitations:        invitations,
		hasher:             hasher,
		tokens:             tokens,
		auditLogger:        auditLogger,
		lockoutMaxAttempts: lockoutMaxAttempts,
		lockoutDuration:    lockoutDuration,
	}
}

// Register creates a verified account with no role. Direct signups carry zero
// authority until someone with manage_users assigns them a role.
func (s *Service) Register(ctx context.Context, email, username, password, firstName, lastName string) (*User, error) {
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !isStrongPassword(password) {
		return nil, ErrWeakPassword
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}

	// A pending invitation wins over direct signup: the invitee must come in
	// through the invitation token so the pre-assigned role is carried.
	if inv, err := s.invitations.GetByEmail(ctx, email); err == nil && inv != nil {
		return nil, ErrInvitationExists
	}

	user := &User{
		ID:                 id.New(),
		Email:              email,
		Username:           username,
		FirstName:          firstName,
		LastName:           lastName,
		RoleID:             nil,
		VerificationStatus: StatusVerified,
		IsActive:           true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.addPassword(ctx, user.ID, password); err != nil {
		return nil, err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserCreated,
		ActorID:  user.ID,
		Resource: user.ID,
		Metadata: map[string]any{audit.AttrEmail: email},
	})

	return user, nil
}

// Invite records a pending role pre-assignment for an email and returns the
// invitation together with its signed acceptance token. The caller must
// already have verified the inviter may assign roleID.
func (s *Service) Invite(ctx context.Context, inviterID, email, roleID string, companyIDs []string) (*Invitation, string, error) {
	if !isValidEmail(email) {
		return nil, "", ErrInvalidEmail
	}
	if roleID == "" {
		return nil, "", fmt.Errorf("role id is required")
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", ErrUserAlreadyExists
	}
	if inv, err := s.invitations.GetByEmail(ctx, email); err == nil && inv != nil {
		return nil, "", ErrInvitationExists
	}

	inv := &Invitation{
		ID:         id.New(),
		Email:      email,
		RoleID:     roleID,
		CompanyIDs: companyIDs,
		InviterID:  inviterID,
		Status:     InvitationPending,
	}

	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("failed to create invitation: %w", err)
	}

	token, err := s.tokens.Issue(inv.ID, email)
	if err != nil {
		return nil, "", err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserInvited,
		ActorID:  inviterID,
		Resource: inv.ID,
		Metadata: map[string]any{
			audit.AttrEmail:  email,
			audit.AttrRoleID: roleID,
		},
	})

	return inv, token, nil
}

// RevokeInvitation withdraws a pending invitation so the email can be invited
// again. Expired acceptance tokens leave the pending row behind; revoking is
// the way to clear it.
func (s *Service) RevokeInvitation(ctx context.Context, actorID, email string) error {
	deleted, err := s.invitations.DeleteByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to revoke invitation: %w", err)
	}
	if !deleted {
		return ErrInvitationNotFound
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeInviteRevoked,
		ActorID:  actorID,
		Resource: email,
		Metadata: map[string]any{audit.AttrEmail: email},
	})

	return nil
}

// AcceptInvitation promotes a pending invitation into a verified, active
// account carrying the pre-assigned role and scope. The account insert is the
// atomic promotion step: the unique email column lets exactly one of two
// racing acceptances create the account. The invitation is consumed only
// after the account and its credentials exist, so a storage failure on the
// way leaves the invitation claimable by a retry.
func (s *Service) AcceptInvitation(ctx context.Context, token, username, password, firstName, lastName string) (*User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if !isStrongPassword(password) {
		return nil, ErrWeakPassword
	}

	inv, err := s.invitations.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvitationNotFound
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}

	roleID := inv.RoleID
	user := &User{
		ID:                 id.New(),
		Email:              email,
		Username:           username,
		FirstName:          firstName,
		LastName:           lastName,
		RoleID:             &roleID,
		CompanyIDs:         inv.CompanyIDs,
		VerificationStatus: StatusVerified,
		IsActive:           true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user from invitation: %w", err)
	}

	if err := s.addPassword(ctx, user.ID, password); err != nil {
		return nil, err
	}

	if _, err := s.invitations.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to consume invitation: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeInviteAccepted,
		ActorID:  user.ID,
		Resource: inv.ID,
		Metadata: map[string]any{
			audit.AttrEmail:  email,
			audit.AttrRoleID: inv.RoleID,
		},
	})

	return user, nil
}

// Authenticate authenticates a user with email and password
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			Resource: email,
			Metadata: map[string]any{audit.AttrReason: "user_not_found"},
		})
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			ActorID:  user.ID,
			Resource: "login",
			Metadata: map[string]any{audit.AttrReason: "inactive"},
		})
		return nil, ErrAccountInactive
	}

	if user.LockedUntil != nil && user.LockedUntil.After(time.Now()) {
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			ActorID:  user.ID,
			Resource: "login",
			Metadata: map[string]any{audit.AttrReason: "locked_out"},
		})
		return nil, ErrAccountLocked
	}

	credentials, err := s.repo.GetCredentials(ctx, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	valid, err := s.hasher.Verify(password, credentials.PasswordHash)
	if err != nil || !valid {
		newAttempts := user.FailedLoginAttempts + 1
		var newLockedUntil *time.Time

		if newAttempts >= s.lockoutMaxAttempts {
			until := time.Now().Add(s.lockoutDuration)
			newLockedUntil = &until
			s.auditLogger.Log(ctx, audit.Event{
				Type:     audit.TypeUserLocked,
				ActorID:  user.ID,
				Resource: "login",
				Metadata: map[string]any{audit.AttrAttempts: newAttempts},
			})
		}

		_ = s.repo.UpdateLockout(ctx, user.ID, newAttempts, newLockedUntil)

		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeLoginFailed,
			ActorID:  user.ID,
			Resource: "login",
			Metadata: map[string]any{
				audit.AttrReason:   "invalid_password",
				audit.AttrAttempts: newAttempts,
			},
		})

		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts > 0 || user.LockedUntil != nil {
		_ = s.repo.UpdateLockout(ctx, user.ID, 0, nil)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeLoginSuccess,
		ActorID:  user.ID,
		Resource: "login",
	})

	return user, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// ListUsers retrieves all users
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

// ListInvitations retrieves all pending invitations
func (s *Service) ListInvitations(ctx context.Context) ([]*Invitation, error) {
	return s.invitations.List(ctx)
}

// UpdateProfile updates a user's name fields
func (s *Service) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.FirstName = firstName
	user.LastName = lastName
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// UpdateUserRole replaces the target's role and company scope. Callers must
// have already run the CanManage and AssignableRoles checks.
func (s *Service) UpdateUserRole(ctx context.Context, actorID, targetID string, roleID *string, companyIDs []string) (*User, error) {
	user, err := s.repo.UpdateRole(ctx, targetID, roleID, companyIDs)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{audit.AttrTargetID: targetID}
	if roleID != nil {
		meta[audit.AttrRoleID] = *roleID
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleAssigned,
		ActorID:  actorID,
		Resource: targetID,
		Metadata: meta,
	})

	return user, nil
}

// Deactivate disables an account. The target keeps its role but cannot log in.
func (s *Service) Deactivate(ctx context.Context, actorID, targetID string) error {
	if err := s.repo.SetActive(ctx, targetID, false); err != nil {
		return err
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeUserDeactivated,
		ActorID:  actorID,
		Resource: targetID,
	})
	return nil
}

// ChangePassword changes user password
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	credentials, err := s.repo.GetCredentials(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	valid, err := s.hasher.Verify(oldPassword, credentials.PasswordHash)
	if err != nil || !valid {
		return ErrInvalidCredentials
	}

	if !isStrongPassword(newPassword) {
		return ErrWeakPassword
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypePasswordChanged,
		ActorID:  userID,
		Resource: userID,
	})

	return nil
}

func (s *Service) addPassword(ctx context.Context, userID, password string) error {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.AddCredentials(ctx, &Credentials{UserID: userID, PasswordHash: passwordHash}); err != nil {
		return fmt.Errorf("failed to add credentials: %w", err)
	}
	return nil
}

// Helper functions
func isValidEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && len(email) < 255
}

func isStrongPassword(password string) bool {
	return len(password) >= 8
}
