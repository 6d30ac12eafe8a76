package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/david485-rev/RecipeExplorer/internal/models"
	"github.com/david485-rev/RecipeExplorer/internal/service"
	"github.com/david485-rev/RecipeExplorer/internal/testhelpers"
)

func newUserService() (*service.UserService, *testhelpers.MemStore) {
	mem := testhelpers.NewMemStore()
	return service.NewUserService(mem, service.NewBcryptHasher(bcrypt.MinCost)), mem
}

func strPtr(s string) *string {
	return &s
}

func TestRegisterThenAuthenticate(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	created, err := users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "david",
		Email:    "david@gmail.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "david", created.Str("username"))
	assert.NotEmpty(t, created.UUID())
	_, hasPassword := created["password"]
	assert.False(t, hasPassword, "registered user must come back redacted")

	claims, err := users.Authenticate(ctx, "david", "david")
	require.NoError(t, err)
	assert.Equal(t, created.UUID(), claims.UUID)
	assert.Equal(t, "david", claims.Username)
}

func TestRegisterMissingFieldOrder(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	cases := []struct {
		name    string
		input   service.RegisterInput
		message string
	}{
		{"no username", service.RegisterInput{Password: "p", Email: "e"}, "missing username"},
		{"no password", service.RegisterInput{Username: "u", Email: "e"}, "missing password"},
		{"no email", service.RegisterInput{Username: "u", Password: "p"}, "missing email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Register(ctx, tc.input)
			require.EqualError(t, err, tc.message)
			assert.Equal(t, service.KindMissingField, service.KindOf(err))
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "david",
		Email:    "david@gmail.com",
	})
	require.NoError(t, err)

	_, err = users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "other",
		Email:    "other@gmail.com",
	})
	require.EqualError(t, err, "user with username already exists!")
	assert.Equal(t, service.KindAlreadyExists, service.KindOf(err))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "david",
		Email:    "david@gmail.com",
	})
	require.NoError(t, err)

	_, err = users.Register(ctx, service.RegisterInput{
		Username: "dave",
		Password: "dave",
		Email:    "david@gmail.com",
	})
	require.EqualError(t, err, "email used already")
	assert.Equal(t, service.KindAlreadyExists, service.KindOf(err))
}

func TestAuthenticateBadCredentials(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	_, err := users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "david",
		Email:    "david@gmail.com",
	})
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "david", "nope")
	require.EqualError(t, err, "invalid credentials")
	assert.Equal(t, service.KindInvalidCredential, service.KindOf(err))

	// An unknown username fails with the exact same message.
	_, err2 := users.Authenticate(ctx, "nobody", "nope")
	require.EqualError(t, err2, "invalid credentials")
}

func TestAuthenticateMissingFields(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	_, err := users.Authenticate(ctx, "", "p")
	require.EqualError(t, err, "missing username")

	_, err = users.Authenticate(ctx, "u", "")
	require.EqualError(t, err, "missing password")
}

func TestChangePassword(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	created, err := users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "old-pass",
		Email:    "david@gmail.com",
	})
	require.NoError(t, err)
	uuid := created.UUID()

	err = users.ChangePassword(ctx, uuid, "old-pass", "")
	require.EqualError(t, err, "New password can not be empty")

	err = users.ChangePassword(ctx, uuid, "wrong", "new-pass")
	require.EqualError(t, err, "password is not correct")
	assert.Equal(t, service.KindInvalidCredential, service.KindOf(err))

	require.NoError(t, users.ChangePassword(ctx, uuid, "old-pass", "new-pass"))

	_, err = users.Authenticate(ctx, "david", "old-pass")
	require.Error(t, err)
	_, err = users.Authenticate(ctx, "david", "new-pass")
	require.NoError(t, err)
}

func TestUpdateProfileUniqueness(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	david, err := users.Register(ctx, service.RegisterInput{
		Username: "david",
		Password: "david",
		Email:    "david@gmail.com",
	})
	require.NoError(t, err)

	_, err = users.Register(ctx, service.RegisterInput{
		Username: "dave",
		Password: "dave",
		Email:    "dave@gmail.com",
	})
	require.NoError(t, err)

	// Taking another user's username is forbidden.
	_, err = users.UpdateProfile(ctx, david.UUID(), service.ProfileInput{
		Username: "dave",
		Email:    "david@gmail.com",
	})
	require.EqualError(t, err, "user with this username already exists!")

	// So is taking another user's email.
	_, err = users.UpdateProfile(ctx, david.UUID(), service.ProfileInput{
		Username: "david",
		Email:    "dave@gmail.com",
	})
	require.EqualError(t, err, "this email already exist")

	// Keeping one's own current values is allowed.
	updated, err := users.UpdateProfile(ctx, david.UUID(), service.ProfileInput{
		Username:    "david",
		Email:       "david@gmail.com",
		Description: strPtr("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Str("description"))
	_, hasPassword := updated["password"]
	assert.False(t, hasPassword)

	// And so is a value nobody owns.
	updated, err = users.UpdateProfile(ctx, david.UUID(), service.ProfileInput{
		Username: "david2",
		Email:    "david2@gmail.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "david2", updated.Str("username"))
}

func TestUpdateProfileMissingFields(t *testing.T) {
	users, _ := newUserService()
	ctx := context.Background()

	_, err := users.UpdateProfile(ctx, "some-uuid", service.ProfileInput{Email: "e"})
	require.EqualError(t, err, "missing username")

	_, err = users.UpdateProfile(ctx, "some-uuid", service.ProfileInput{Username: "u"})
	require.EqualError(t, err, "missing email")
}

func TestRemoveAccountTombstones(t *testing.T) {
	users, mem := newUserService()
	ctx := context.Background()

	err := users.RemoveAccount(ctx, "")
	require.EqualError(t, err, "uuid missing")

	created, err := users.Register(ctx, service.RegisterInput{
		Username:    "david",
		Password:    "david",
		Email:       "david@gmail.com",
		Description: strPtr("bio"),
		Picture:     strPtr("http://example.com/p.png"),
	})
	require.NoError(t, err)
	uuid := created.UUID()

	require.NoError(t, users.RemoveAccount(ctx, uuid))

	item, err := mem.GetItem(ctx, uuid)
	require.NoError(t, err)
	assert.Equal(t, "deleted-user"+uuid, item.Str("username"))
	assert.Equal(t, models.TypeUser, item.Type())
	for _, scrubbed := range []string{"password", "email", "description", "picture"} {
		_, present := item[scrubbed]
		assert.Falsef(t, present, "%s must be scrubbed", scrubbed)
	}
}
