package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/store"
)

// UserService handles registration, login verification, password changes and
// profile updates, enforcing username/email uniqueness against the shared
// table.
type UserService struct {
	store  store.Gateway
	hasher PasswordHasher
}

func NewUserService(gw store.Gateway, hasher PasswordHasher) *UserService {
	return &UserService{
		store:  gw,
		hasher: hasher,
	}
}

// RegisterInput carries a registration request. Description and Picture are
// optional and stored as null when nil.
type RegisterInput struct {
	Username    string
	Password    string
	Email       string
	Description *string
	Picture     *string
}

// ProfileInput carries a profile update.
type ProfileInput struct {
	Username    string
	Email       string
	Description *string
	Picture     *string
}

// Register creates a user after checking username and email uniqueness.
// Returns the created record with the password redacted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.Item, error) {
	if in.Username == "" {
		return nil, errMissing("missing username")
	}
	if in.Password == "" {
		return nil, errMissing("missing password")
	}
	if in.Email == "" {
		return nil, errMissing("missing email")
	}

	taken, err := s.usernameTaken(ctx, in.Username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errExists("user with username already exists!")
	}

	used, err := s.emailTaken(ctx, in.Email, "")
	if err != nil {
		return nil, err
	}
	if used {
		return nil, errExists("email used already")
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(in.Username, hashed, in.Email, in.Description, in.Picture)
	if err := s.store.PutItem(ctx, user); err != nil {
		return nil, storeFailure(err)
	}
	return user.Redacted(), nil
}

// Authenticate verifies a username/password pair and returns the identity
// summary on success. The error is identical whether the username is unknown
// or the password is wrong.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*TokenClaims, error) {
	if username == "" {
		return nil, errMissing("missing username")
	}
	if password == "" {
		return nil, errMissing("missing password")
	}

	items, err := s.store.QueryByIndex(ctx, store.IndexUsername, store.Pair{Field: "username", Value: username}, nil, nil)
	if err != nil {
		return nil, storeFailure(err)
	}
	if len(items) == 0 {
		return nil, errCredential("invalid credentials")
	}
	user, ok := models.AsUser(items[0])
	if !ok || !s.hasher.Verify(password, user.Password) {
		return nil, errCredential("invalid credentials")
	}

	return &TokenClaims{UUID: user.UUID, Username: user.Username}, nil
}

// ChangePassword re-hashes and persists newPassword after verifying
// oldPassword against the stored credential.
func (s *UserService) ChangePassword(ctx context.Context, identityUUID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return errMissing("New password can not be empty")
	}
	if identityUUID == "" {
		return errMissing("uuid missing")
	}

	user, err := s.loadUser(ctx, identityUUID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(oldPassword, user.Password) {
		return errCredential("password is not correct")
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.store.UpdateItem(ctx, identityUUID, map[string]any{"password": hashed}); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return errNotFound("invalid uuid")
		}
		return storeFailure(err)
	}
	return nil
}

// UpdateProfile patches username, email, description and picture. A username
// or email owned by a different user is rejected; keeping one's own current
// value is allowed.
func (s *UserService) UpdateProfile(ctx context.Context, identityUUID string, in ProfileInput) (models.Item, error) {
	if in.Username == "" {
		return nil, errMissing("missing username")
	}
	if in.Email == "" {
		return nil, errMissing("missing email")
	}
	if identityUUID == "" {
		return nil, errMissing("uuid missing")
	}

	current, err := s.loadUser(ctx, identityUUID)
	if err != nil {
		return nil, err
	}

	if in.Username != current.Username {
		taken, err := s.usernameTaken(ctx, in.Username, identityUUID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errExists("user with this username already exists!")
		}
	}
	if in.Email != current.Email {
		used, err := s.emailTaken(ctx, in.Email, identityUUID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, errExists("this email already exist")
		}
	}

	updated, err := s.store.UpdateItem(ctx, identityUUID, map[string]any{
		"username":    in.Username,
		"email":       in.Email,
		"description": deref(in.Description),
		"picture":     deref(in.Picture),
	})
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return nil, errNotFound("invalid uuid")
		}
		return nil, storeFailure(err)
	}
	return updated.Redacted(), nil
}

// RemoveAccount soft-deletes a user. The record keeps its uuid so recipes and
// comments referencing it stay resolvable, but the username is replaced with
// a tombstone and the credential and profile fields are scrubbed.
func (s *UserService) RemoveAccount(ctx context.Context, identityUUID string) error {
	if identityUUID == "" {
		return errMissing("uuid missing")
	}
	_, err := s.store.UpdateItem(ctx, identityUUID, map[string]any{
		"username":    "deleted-user" + identityUUID,
		"password":    nil,
		"email":       nil,
		"description": nil,
		"picture":     nil,
	})
	if err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			return errNotFound("invalid uuid")
		}
		return storeFailure(err)
	}
	return nil
}

func (s *UserService) loadUser(ctx context.Context, uuid string) (*models.User, error) {
	item, err := s.store.GetItem(ctx, uuid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("invalid uuid")
		}
		return nil, storeFailure(err)
	}
	user, ok := models.AsUser(item)
	if !ok {
		return nil, errNotFound("invalid uuid")
	}
	return user, nil
}

// usernameTaken reports whether a different user than selfUUID owns username.
func (s *UserService) usernameTaken(ctx context.Context, username, selfUUID string) (bool, error) {
	items, err := s.store.QueryByIndex(ctx, store.IndexUsername, store.Pair{Field: "username", Value: username}, nil, nil)
	if err != nil {
		return false, storeFailure(err)
	}
	for _, it := range items {
		if it.UUID() != selfUUID {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserService) emailTaken(ctx context.Context, email, selfUUID string) (bool, error) {
	items, err := s.store.QueryByIndex(ctx, store.IndexEmail, store.Pair{Field: "email", Value: email}, nil, nil)
	if err != nil {
		return false, storeFailure(err)
	}
	for _, it := range items {
		if it.UUID() != selfUUID {
			return true, nil
		}
	}
	return false, nil
}

func storeFailure(err error) error {
	log.Printf("service: store failure: %v", err)
	return errStore("database error")
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
