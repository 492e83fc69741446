package impl

import (
	"context"
	"testing"
	"time"

	"bistro/internal/domain/entity"
	domainerrors "bistro/internal/domain/errors"
	"bistro/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountService(tx *fakeTxManager) usecase.AccountUsecase {
	return NewAccountService(tx, fakeHasher{}, &fakeTokenService{}, newDiscardLogger())
}

func TestAccountService_Register_Client(t *testing.T) {
	tx := newFakeTxManager()
	svc := newAccountService(tx)

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "Alice@Example.com",
		Password: "hunter2hunter2",
		Name:     "Alice",
		Role:     "client",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)

	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.Equal(t, entity.RoleClient, out.User.Role)
	assert.False(t, out.User.Verified)
	assert.Nil(t, out.User.SellerProfile)
	assert.NotEmpty(t, out.VerificationToken)
	assert.Len(t, tx.store.verifications, 1)
}

func TestAccountService_Register_SellerCarriesProfile(t *testing.T) {
	tx := newFakeTxManager()
	svc := newAccountService(tx)

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "trattoria@example.com",
		Password: "hunter2hunter2",
		Name:     "Trattoria",
		Role:     "seller",
		Cuisine:  "italian",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User.SellerProfile)
	assert.Equal(t, "italian", out.User.SellerProfile.Cuisine)
}

func TestAccountService_Register_RejectsAdminRole(t *testing.T) {
	svc := newAccountService(newFakeTxManager())

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "root@example.com",
		Password: "hunter2hunter2",
		Name:     "Root",
		Role:     "admin",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	tx := newFakeTxManager()
	tx.store.addUser(&entity.User{Email: "alice@example.com", Role: entity.RoleClient})
	svc := newAccountService(tx)

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "ALICE@example.com",
		Password: "hunter2hunter2",
		Name:     "Alice",
		Role:     "client",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAccountService_Login_Success(t *testing.T) {
	tx := newFakeTxManager()
	tx.store.addUser(&entity.User{
		Email:        "alice@example.com",
		Role:         entity.RoleClient,
		PasswordHash: "hashed:hunter2hunter2",
	})
	svc := newAccountService(tx)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, entity.RoleClient, out.User.Role)
}

func TestAccountService_Login_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	tx := newFakeTxManager()
	tx.store.addUser(&entity.User{
		Email:        "alice@example.com",
		Role:         entity.RoleClient,
		PasswordHash: "hashed:hunter2hunter2",
	})
	svc := newAccountService(tx)

	_, wrongPassErr := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	_, unknownErr := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})

	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
}

func TestAccountService_VerifyEmail_MarksVerifiedAndConsumesRecord(t *testing.T) {
	tx := newFakeTxManager()
	svc := newAccountService(tx)

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		Name:     "Alice",
		Role:     "client",
	})
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), out.VerificationToken))

	user, err := svc.GetProfile(context.Background(), out.User.ID)
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Empty(t, tx.store.verifications)
}

func TestAccountService_VerifyEmail_ReplayReportsAlreadyVerified(t *testing.T) {
	tx := newFakeTxManager()
	svc := newAccountService(tx)

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
		Name:     "Alice",
		Role:     "client",
	})
	require.NoError(t, err)
	require.NoError(t, svc.VerifyEmail(context.Background(), out.VerificationToken))

	err = svc.VerifyEmail(context.Background(), out.VerificationToken)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
}

func TestAccountService_VerifyEmail_ExpiredRecord(t *testing.T) {
	tx := newFakeTxManager()
	user := tx.store.addClient()
	user.Verified = false
	token := "verify-" + user.ID.String()
	tx.store.verifications = append(tx.store.verifications, &entity.EmailVerification{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	svc := newAccountService(tx)

	err := svc.VerifyEmail(context.Background(), token)
	assert.ErrorIs(t, err, domainerrors.ErrVerificationToken)
}

func TestAccountService_VerifyEmail_BadToken(t *testing.T) {
	svc := newAccountService(newFakeTxManager())

	err := svc.VerifyEmail(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrVerificationToken)
}

func TestAccountService_ResolveIdentity_FailsClosed(t *testing.T) {
	tx := newFakeTxManager()
	user := tx.store.addClient()
	svc := newAccountService(tx)

	identity, err := svc.ResolveIdentity(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, entity.RoleClient, identity.Role)

	_, err = svc.ResolveIdentity(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAccountService_UpdateProfile_NilMeansUnchanged(t *testing.T) {
	tx := newFakeTxManager()
	user := tx.store.addUser(&entity.User{
		Email: "alice@example.com",
		Name:  "Alice",
		Phone: "555-0101",
		Role:  entity.RoleClient,
	})
	svc := newAccountService(tx)

	name := "Alice B"
	require.NoError(t, svc.UpdateProfile(context.Background(), user.ID, &usecase.UpdateProfileInput{
		Name: &name,
	}))

	updated, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "555-0101", updated.Phone)
}
