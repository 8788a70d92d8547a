package service

import (
	"errors"
	"testing"
	"time"

	"go-inventory-billing/internal/repository"
	"go-inventory-billing/internal/repository/repotest"
	"go-inventory-billing/pkg/jwt"
)

func newAuth(t *testing.T) (AuthService, repository.Store, *jwt.Manager) {
	store, _ := repotest.Open(t)
	tokens := jwt.NewManager("test-secret", time.Hour)
	return NewAuthService(store.Users(), tokens, quietLogger()), store, tokens
}

func signup() SignupInput {
	return SignupInput{
		Email:           "Owner@Shop.example",
		Username:        "owner",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	}
}

func TestSignupAndLogin(t *testing.T) {
	auth, store, tokens := newAuth(t)

	user, err := auth.Signup(signup())
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "owner@shop.example" || !user.IsActive {
		t.Fatalf("user = %+v", user)
	}

	if _, err := auth.Signup(signup()); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second signup: err = %v, want ErrDuplicate", err)
	}

	if _, err := auth.Login("owner@shop.example", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password: err = %v", err)
	}

	resp, err := auth.Login("OWNER@shop.example", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := tokens.ValidateToken(resp.Token)
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := store.Users().FindByID(user.ID)
	if claims.TokenVersion != stored.TokenVersion || claims.TokenVersion == "" {
		t.Fatalf("token version %q, stored %q", claims.TokenVersion, stored.TokenVersion)
	}

	if err := auth.Logout(user.ID); err != nil {
		t.Fatal(err)
	}
	stored, _ = store.Users().FindByID(user.ID)
	if stored.TokenVersion == claims.TokenVersion {
		t.Fatal("logout kept the token version")
	}
}

func TestSignupValidation(t *testing.T) {
	auth, _, _ := newAuth(t)

	in := signup()
	in.ConfirmPassword = "different"
	var ve *ValidationError
	if _, err := auth.Signup(in); !errors.As(err, &ve) || ve.Fields["confirm_password"] == "" {
		t.Fatalf("err = %v, want confirm_password error", err)
	}

	in = signup()
	in.Password, in.ConfirmPassword = "short", "short"
	if _, err := auth.Signup(in); !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestChangePassword(t *testing.T) {
	auth, _, _ := newAuth(t)
	user, err := auth.Signup(signup())
	if err != nil {
		t.Fatal(err)
	}

	err = auth.ChangePassword(user.ID, ChangePasswordInput{OldPassword: "nope", NewPassword: "another-pass"})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("err = %v, want ErrWrongPassword", err)
	}
	if err := auth.ChangePassword(user.ID, ChangePasswordInput{OldPassword: "s3cret-pass", NewPassword: "another-pass"}); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Login("owner@shop.example", "another-pass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
