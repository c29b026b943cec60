package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/domain"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
)

type fakeAuthUserRepo struct {
	byEmail map[string]domain.User
	nextID  uint
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byEmail: make(map[string]domain.User), nextID: 1}
}

func (f *fakeAuthUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user

	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo())

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "seller@example.com",
		Password: "topsecret1",
		Name:     "Seller",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", created.BaseCurrency)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("topsecret1")))

	user, err := svc.Login(context.Background(), "seller@example.com", "topsecret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(context.Background(), "seller@example.com", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(context.Background(), "nobody@example.com", "topsecret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserRepo())

	_, err := svc.Signup(context.Background(), domain.User{
		Email:        "seller@example.com",
		Password:     "topsecret1",
		BaseCurrency: "EUR",
	})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{
		Email:    "seller@example.com",
		Password: "topsecret1",
	})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}
