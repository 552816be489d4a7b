package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"banquet-admin/database"
	"banquet-admin/model"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("please enter both email and password")
	ErrUserNotFound       = errors.New("user not found")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrInactiveAccount    = errors.New("this account is inactive")
)

// Verifier checks a login/password pair and returns the matching user.
type Verifier interface {
	Verify(ctx context.Context, login, password string) (model.UserData, error)
}

// StoreVerifier verifies credentials against bcrypt hashes held in a UserStore.
type StoreVerifier struct {
	users database.UserStore
}

func NewStoreVerifier(users database.UserStore) *StoreVerifier {
	return &StoreVerifier{users: users}
}

func (v *StoreVerifier) Verify(ctx context.Context, login, password string) (model.UserData, error) {
	login = strings.TrimSpace(login)
	password = strings.TrimSpace(password)
	if login == "" || password == "" {
		return model.UserData{}, ErrMissingCredentials
	}

	user, err := v.users.GetUserData(ctx, login)
	if errors.Is(err, database.ErrUserNotFound) {
		return model.UserData{}, ErrUserNotFound
	}
	if err != nil {
		return model.UserData{}, fmt.Errorf("cannot verify credentials: %w", err)
	}

	if !isPasswordHashCorrect(user.HashedPassword, password) {
		return model.UserData{}, ErrIncorrectPassword
	}

	if !user.IsActive {
		return model.UserData{}, ErrInactiveAccount
	}

	return user, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}
