package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: 24 * time.Hour,
		BcryptCost:            bcrypt.MinCost,
	}
	return NewUserService(nil, rm, cfg)
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo()}
	s := newUserService(t, rm)

	u, err := s.Register(context.Background(), "  alice@example.com ", []byte("pw"))
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, []byte("pw"), u.PasswordHash)

	ok, err := auth.CheckPassword(u.PasswordHash, []byte("pw"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegister_ValidationErrors(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: newFakeUsersRepo()})

	_, err := s.Register(context.Background(), "", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(context.Background(), "a@example.com", nil)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_PasswordLimitCountsBytes(t *testing.T) {
	users := newFakeUsersRepo()
	s := newUserService(t, &fakeRepoManager{u: users})

	// 72 characters, 144 bytes
	_, err := s.Register(context.Background(), "a@example.com", []byte(strings.Repeat("é", 72)))
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = s.Register(context.Background(), "b@example.com", []byte(strings.Repeat("é", 36)))
	assert.NoError(t, err)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUsersRepo()
	s := newUserService(t, &fakeRepoManager{u: repo})
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)

	_, err = s.Register(ctx, "alice@example.com", []byte("other"))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Equal(t, 1, repo.created, "exactly one account must exist")
}

func TestRegister_RaceLostAtInsertStillConflicts(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.createErr = common.ErrorAlreadyExists
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, err := s.Register(context.Background(), "alice@example.com", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestRegister_LookupFailure(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.getErr = errors.New("db down")
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, err := s.Register(context.Background(), "alice@example.com", []byte("pw"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrorAlreadyExists))
}

func TestLogin_SuccessIssuesTokenForUser(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: newFakeUsersRepo()})
	ctx := context.Background()

	u, err := s.Register(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)

	token, err := s.Login(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)

	userID, err := s.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: newFakeUsersRepo()})
	ctx := context.Background()

	_, err := s.Register(ctx, "alice@example.com", []byte("pw"))
	require.NoError(t, err)

	_, errWrongPw := s.Login(ctx, "alice@example.com", []byte("nope"))
	_, errUnknown := s.Login(ctx, "bob@example.com", []byte("pw"))
	_, errEmpty := s.Login(ctx, "", nil)

	for _, err := range []error{errWrongPw, errUnknown, errEmpty} {
		assert.Equal(t, common.ErrorUnauthorized, err)
	}
}

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.getErr = errors.New("db down")
	s := newUserService(t, &fakeRepoManager{u: repo})

	_, err := s.Login(context.Background(), "alice@example.com", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	s := newUserService(t, &fakeRepoManager{u: newFakeUsersRepo()})

	expired, err := auth.GenerateToken("u1", []byte("k"), -time.Minute)
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("u1", []byte("other-secret"), time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", expired, foreign} {
		_, err := s.Authenticate(tok)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	}

	_, err = s.Authenticate(expired)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}
