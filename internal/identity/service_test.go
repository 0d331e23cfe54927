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
	"testing"
	"time"

	"github.com/stewardhq/steward/internal/audit"
)

// MockUserRepository is a simple in-memory implementation of UserRepository
type MockUserRepository struct {
	users       map[string]*User
	credentials map[string]*Credentials

	// createErr, when set, makes Create fail to simulate a storage outage.
	createErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:       make(map[string]*User),
		credentials: make(map[string]*Credentials),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) error {
	if m.createErr != nil {
		return m.createErr
	}
	// email is unique, mirroring the users table constraint
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserRepository) List(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *User) error {
	if _, ok := m.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID string, roleID *string, companyIDs []string) (*User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.RoleID = roleID
	u.CompanyIDs = companyIDs
	return u, nil
}

func (m *MockUserRepository) UpdateLockout(ctx context.Context, userID string, failedAttempts int, lockedUntil *time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.FailedLoginAttempts = failedAttempts
	u.LockedUntil = lockedUntil
	return nil
}

func (m *MockUserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (m *MockUserRepository) CountWithRole(ctx context.Context, roleID string) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.RoleID != nil && *u.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func (m *MockUserRepository) AddCredentials(ctx context.Context, credentials *Credentials) error {
	m.credentials[credentials.UserID] = credentials
	return nil
}

func (m *MockUserRepository) GetCredentials(ctx context.Context, userID string) (*Credentials, error) {
	c, ok := m.credentials[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return c, nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	c, ok := m.credentials[userID]
	if !ok {
		return ErrUserNotFound
	}
	c.PasswordHash = passwordHash
	return nil
}

// MockInvitationRepository is an in-memory implementation of InvitationRepository
type MockInvitationRepository struct {
	byEmail map[string]*Invitation
}

func NewMockInvitationRepository() *MockInvitationRepository {
	return &MockInvitationRepository{byEmail: make(map[string]*Invitation)}
}

func (m *MockInvitationRepository) Create(ctx context.Context, inv *Invitation) error {
	if _, ok := m.byEmail[inv.Email]; ok {
		return ErrInvitationExists
	}
	m.byEmail[inv.Email] = inv
	return nil
}

func (m *MockInvitationRepository) GetByEmail(ctx context.Context, email string) (*Invitation, error) {
	inv, ok := m.byEmail[email]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	return inv, nil
}

func (m *MockInvitationRepository) List(ctx context.Context) ([]*Invitation, error) {
	out := make([]*Invitation, 0, len(m.byEmail))
	for _, inv := range m.byEmail {
		out = append(out, inv)
	}
	return out, nil
}

func (m *MockInvitationRepository) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	if _, ok := m.byEmail[email]; !ok {
		return false, nil
	}
	delete(m.byEmail, email)
	return true, nil
}

func newTestService() *Service {
	return newTestServiceWith(NewMockUserRepository(), NewMockInvitationRepository())
}

func newTestServiceWith(repo *MockUserRepository, invitations *MockInvitationRepository) *Service {
	hasher := NewPasswordHasher(65536, 3, 4, 16, 32)
	tokens := NewInviteTokenIssuer("test-secret-do-not-use", time.Hour)
	return NewService(repo, invitations, hasher, tokens, audit.NewSlogLogger(), 3, 5*time.Minute)
}

// TestPurpose: Validates the user authentication flow, including success, failure, and account lockout after multiple failed attempts.
// Scope: Unit Test
// Security: Authentication mechanisms and Brute-force protection (lockout)
// Expected: Successful login for correct credentials, error for wrong credentials, and account lockout after the configured threshold.
// Test Case ID: IDN-01
func TestIdentity_Service_Authenticate(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	email := "test@example.com"
	password := "SecurePassword123"

	user, err := s.Register(ctx, email, "tester", password, "Test", "User")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	// Success authentication
	authed, err := s.Authenticate(ctx, email, password)
	if err != nil {
		t.Fatalf("expected success, got err: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, authed.ID)
	}

	// Failed authentication (wrong password)
	_, err = s.Authenticate(ctx, email, "WrongPassword")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	// Account lockout
	s.Authenticate(ctx, email, "WrongPassword")          // Total failed: 2
	_, err = s.Authenticate(ctx, email, "WrongPassword") // Total failed: 3 (Threshold met)
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for 3rd failed attempt, got %v", err)
	}

	// 4th attempt should be locked out even with the right password
	_, err = s.Authenticate(ctx, email, password)
	if err != ErrAccountLocked {
		t.Errorf("expected ErrAccountLocked, got %v", err)
	}
}

// TestPurpose: Validates that registration fails if a user with the same email already exists.
// Scope: Unit Test
// Security: Data Integrity and Unique Constraint Enforcement
// Expected: ErrUserAlreadyExists when email is already registered.
// Test Case ID: IDN-02
func TestIdentity_Service_Register_Conflict(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	email := "conflict@example.com"

	if _, err := s.Register(ctx, email, "first", "SecurePassword123", "", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := s.Register(ctx, email, "second", "SecurePassword123", "", "")
	if err != ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

// TestPurpose: Validates that a deactivated account cannot authenticate.
// Scope: Unit Test
// Security: Account lifecycle enforcement
// Expected: ErrAccountInactive after deactivation.
// Test Case ID: IDN-03
func TestIdentity_Service_Authenticate_Inactive(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	email := "inactive@example.com"
	password := "SecurePassword123"

	user, err := s.Register(ctx, email, "inactive", password, "", "")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	if err := s.Deactivate(ctx, "actor-1", user.ID); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	_, err = s.Authenticate(ctx, email, password)
	if err != ErrAccountInactive {
		t.Errorf("expected ErrAccountInactive, got %v", err)
	}
}

// TestPurpose: Validates the invitation lifecycle: invite, accept with the signed token, and account promotion carrying the pre-assigned role and scope.
// Scope: Unit Test
// Security: Invitation token integrity and at-most-once consumption
// Expected: Acceptance yields an active verified account with the invited role; a second acceptance fails.
// Test Case ID: IDN-04
func TestIdentity_Service_InvitationLifecycle(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	email := "invitee@example.com"
	roleID := "role-42"
	scope := []string{"company-7"}

	inv, token, err := s.Invite(ctx, "inviter-1", email, roleID, scope)
	if err != nil {
		t.Fatalf("failed to invite: %v", err)
	}
	if inv.Status != InvitationPending {
		t.Errorf("expected pending status, got %s", inv.Status)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	// Direct registration is blocked while the invitation is pending.
	if _, err := s.Register(ctx, email, "sneaky", "SecurePassword123", "", ""); err != ErrInvitationExists {
		t.Errorf("expected ErrInvitationExists, got %v", err)
	}

	user, err := s.AcceptInvitation(ctx, token, "invitee", "SecurePassword123", "In", "Vitee")
	if err != nil {
		t.Fatalf("failed to accept invitation: %v", err)
	}
	if user.RoleID == nil || *user.RoleID != roleID {
		t.Errorf("expected role %s carried onto the account, got %v", roleID, user.RoleID)
	}
	if len(user.CompanyIDs) != 1 || user.CompanyIDs[0] != "company-7" {
		t.Errorf("expected company scope carried onto the account, got %v", user.CompanyIDs)
	}
	if user.VerificationStatus != StatusVerified {
		t.Errorf("expected verified status, got %s", user.VerificationStatus)
	}

	// The invitation is consumed: a second accept with the same token fails.
	_, err = s.AcceptInvitation(ctx, token, "invitee2", "SecurePassword123", "", "")
	if err != ErrInvitationNotFound {
		t.Errorf("expected ErrInvitationNotFound on reuse, got %v", err)
	}

	// And the account can log in.
	if _, err := s.Authenticate(ctx, email, "SecurePassword123"); err != nil {
		t.Errorf("expected login after acceptance, got %v", err)
	}
}

// TestPurpose: Validates that a tampered or foreign invitation token is rejected.
// Scope: Unit Test
// Security: Token signature verification
// Expected: ErrInvalidInviteToken for garbage and foreign-key tokens.
// Test Case ID: IDN-05
func TestIdentity_Service_AcceptInvitation_BadToken(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.AcceptInvitation(ctx, "not-a-token", "x", "SecurePassword123", "", "")
	if err != ErrInvalidInviteToken {
		t.Errorf("expected ErrInvalidInviteToken, got %v", err)
	}

	// Token signed with a different secret
	foreign := NewInviteTokenIssuer("other-secret", time.Hour)
	token, err := foreign.Issue("inv-1", "someone@example.com")
	if err != nil {
		t.Fatalf("failed to issue foreign token: %v", err)
	}
	_, err = s.AcceptInvitation(ctx, token, "x", "SecurePassword123", "", "")
	if err != ErrInvalidInviteToken {
		t.Errorf("expected ErrInvalidInviteToken for foreign signature, got %v", err)
	}
}

// TestPurpose: Validates that inviting an email twice or inviting an existing user is rejected.
// Scope: Unit Test
// Expected: ErrInvitationExists / ErrUserAlreadyExists.
// Test Case ID: IDN-06
func TestIdentity_Service_Invite_Conflicts(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	if _, _, err := s.Invite(ctx, "inviter-1", "pending@example.com", "role-1", nil); err != nil {
		t.Fatalf("first invite failed: %v", err)
	}
	if _, _, err := s.Invite(ctx, "inviter-1", "pending@example.com", "role-2", nil); err != ErrInvitationExists {
		t.Errorf("expected ErrInvitationExists, got %v", err)
	}

	if _, err := s.Register(ctx, "member@example.com", "member", "SecurePassword123", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := s.Invite(ctx, "inviter-1", "member@example.com", "role-1", nil); err != ErrUserAlreadyExists {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

// TestPurpose: Validates password change with old-password verification.
// Scope: Unit Test
// Expected: Wrong old password rejected; new password usable afterwards.
// Test Case ID: IDN-07
func TestIdentity_Service_ChangePassword(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	email := "pw@example.com"

	user, err := s.Register(ctx, email, "pw", "OldPassword123", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := s.ChangePassword(ctx, user.ID, "WrongOld", "NewPassword123"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := s.ChangePassword(ctx, user.ID, "OldPassword123", "short"); err != ErrWeakPassword {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
	if err := s.ChangePassword(ctx, user.ID, "OldPassword123", "NewPassword123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := s.Authenticate(ctx, email, "NewPassword123"); err != nil {
		t.Errorf("expected login with new password, got %v", err)
	}
}

// TestPurpose: Validates that revoking a pending invitation frees the email for a fresh invite.
// Scope: Unit Test
// Security: Stale pending invitations (e.g. after token expiry) must be clearable.
// Expected: Revoke deletes the pending row; re-invite succeeds; the old token is dead; revoking an unknown email fails.
// Test Case ID: IDN-08
func TestIdentity_Service_RevokeInvitation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	email := "stale@example.com"

	_, oldToken, err := s.Invite(ctx, "inviter-1", email, "role-1", nil)
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	if err := s.RevokeInvitation(ctx, "inviter-1", email); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	// The old token no longer resolves to an invitation.
	if _, err := s.AcceptInvitation(ctx, oldToken, "x", "SecurePassword123", "", ""); err != ErrInvitationNotFound {
		t.Errorf("expected ErrInvitationNotFound for revoked invitation, got %v", err)
	}

	// The email can be invited again with a different role.
	inv, _, err := s.Invite(ctx, "inviter-1", email, "role-2", nil)
	if err != nil {
		t.Fatalf("re-invite after revoke failed: %v", err)
	}
	if inv.RoleID != "role-2" {
		t.Errorf("expected role-2 on the new invitation, got %s", inv.RoleID)
	}

	if err := s.RevokeInvitation(ctx, "inviter-1", "nobody@example.com"); err != ErrInvitationNotFound {
		t.Errorf("expected ErrInvitationNotFound, got %v", err)
	}
}

// TestPurpose: Validates that a storage failure during acceptance does not consume the invitation.
// Scope: Unit Test
// Security: The pre-assigned role must survive a failed promotion attempt.
// Expected: Acceptance fails while the user store is down, the invitation stays claimable, and a retry with the same token succeeds with the invited role.
// Test Case ID: IDN-09
func TestIdentity_Service_AcceptInvitation_StorageFailure(t *testing.T) {
	repo := NewMockUserRepository()
	invitations := NewMockInvitationRepository()
	s := newTestServiceWith(repo, invitations)
	ctx := context.Background()
	email := "flaky@example.com"

	_, token, err := s.Invite(ctx, "inviter-1", email, "role-9", []string{"company-1"})
	if err != nil {
		t.Fatalf("invite failed: %v", err)
	}

	repo.createErr = errors.New("connection refused")
	if _, err := s.AcceptInvitation(ctx, token, "flaky", "SecurePassword123", "", ""); err == nil {
		t.Fatal("expected acceptance to fail while the user store is down")
	}

	// The invitation survived the failed attempt.
	if _, err := invitations.GetByEmail(ctx, email); err != nil {
		t.Fatalf("expected invitation to remain claimable, got %v", err)
	}

	repo.createErr = nil
	user, err := s.AcceptInvitation(ctx, token, "flaky", "SecurePassword123", "", "")
	if err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
	if user.RoleID == nil || *user.RoleID != "role-9" {
		t.Errorf("expected role-9 carried onto the account, got %v", user.RoleID)
	}
	if _, err := invitations.GetByEmail(ctx, email); err != ErrInvitationNotFound {
		t.Errorf("expected invitation consumed after success, got %v", err)
	}
}
