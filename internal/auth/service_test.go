package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestService(t *testing.T) (*Service, *InMemory) {
	t.Helper()
	store := NewInMemory()
	tokens, err := NewTokenIssuer("test-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	svc, err := NewService(store, tokens)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func validOwnerProfile() OwnerProfile {
	return OwnerProfile{
		FullName:              "Jane da Silva",
		CPF:                   "123.456.789-00",
		CARNumber:             "CAR-0001",
		HasSpring:             true,
		SpringCount:           2,
		WaterAvailability:     "permanente",
		SpringUses:            []string{"consumo humano", "irrigação"},
		SurroundingVegetation: "mata nativa",
		HasProtection:         true,
		WaterColor:            "clara",
	}
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Ana", Email: "a@x.com", Password: "secret1", Role: RoleOwner,
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Outra Ana", Email: "a@x.com", Password: "secret2", Role: RoleAdmin,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The original record must be untouched by the failed attempt.
	got, err := svc.GetUser(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Ana" || got.Role != RoleOwner {
		t.Fatalf("record altered by failed register: %+v", got)
	}
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []RegisterUserInput{
		{Email: "x@x.com", Password: "pw", Role: RoleAdmin},
		{Name: "X", Password: "pw", Role: RoleAdmin},
		{Name: "X", Email: "x@x.com", Role: RoleAdmin},
		{Name: "X", Email: "x@x.com", Password: "pw", Role: "supervisor"},
	}
	for _, in := range cases {
		if _, err := svc.RegisterUser(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestLoginUserRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Bruno", Email: "b@x.com", Password: "pw1", Role: RoleEvaluator,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	login, err := svc.LoginUser(ctx, "b@x.com", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.Token == "" {
		t.Fatal("expected token")
	}
	if login.User.ID != created.ID {
		t.Fatalf("unexpected user in login result: %+v", login.User)
	}

	claims, err := svc.tokens.ParseAndValidate(login.Token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Subject != created.ID {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != RoleEvaluator {
		t.Fatalf("unexpected role claim: %q", claims.Role)
	}

	if _, err := svc.LoginUser(ctx, "b@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.LoginUser(ctx, "nobody@x.com", "whatever")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("not-found must stay distinct from bad credentials")
	}
}

func TestLoginRequiresEmailAndPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.LoginUser(ctx, "", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.LoginOwner(ctx, "o@x.com", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestOwnerRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	owner, err := svc.RegisterOwner(ctx, RegisterOwnerInput{
		Email:    "c@x.com",
		Password: "pw3",
		Profile:  validOwnerProfile(),
	})
	if err != nil {
		t.Fatalf("register owner: %v", err)
	}
	if owner.Tipo != "proprietario" {
		t.Fatalf("unexpected tipo: %q", owner.Tipo)
	}
	if owner.FullName != "Jane da Silva" {
		t.Fatalf("unexpected nomeCompleto: %q", owner.FullName)
	}

	login, err := svc.LoginOwner(ctx, "c@x.com", "pw3")
	if err != nil {
		t.Fatalf("login owner: %v", err)
	}
	claims, err := svc.tokens.ParseAndValidate(login.Token)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}
	if claims.Tipo != "proprietario" {
		t.Fatalf("unexpected tipo claim: %q", claims.Tipo)
	}
	if claims.Email != "c@x.com" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
	if claims.FullName != "Jane da Silva" {
		t.Fatalf("unexpected nomeCompleto claim: %q", claims.FullName)
	}
	if claims.Role != "" {
		t.Fatalf("owner token must not carry a role, got %q", claims.Role)
	}
}

func TestOwnerRegisterRequiresProfileFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	profile := validOwnerProfile()
	profile.CPF = ""
	_, err := svc.RegisterOwner(ctx, RegisterOwnerInput{
		Email: "d@x.com", Password: "pw", Profile: profile,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserAndOwnerUniquenessScopesAreSeparate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Dup", Email: "same@x.com", Password: "pw", Role: RoleAdmin,
	}); err != nil {
		t.Fatalf("register user: %v", err)
	}
	if _, err := svc.RegisterOwner(ctx, RegisterOwnerInput{
		Email: "same@x.com", Password: "pw", Profile: validOwnerProfile(),
	}); err != nil {
		t.Fatalf("same email across kinds must be allowed: %v", err)
	}
}

func TestEmailMatchIsExact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Caso", Email: "Case@X.com", Password: "pw", Role: RoleAdmin,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.LoginUser(ctx, "case@x.com", "pw"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("lookup must not normalize case, got %v", err)
	}
}

func TestPlaintextIsNeverStored(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Segredo", Email: "s@x.com", Password: "plain-text-pw", Role: RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	p, err := store.Find(ctx, KindUser, created.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.PasswordHash == "plain-text-pw" || strings.Contains(p.PasswordHash, "plain-text-pw") {
		t.Fatal("plaintext leaked into stored record")
	}
	if !strings.HasPrefix(p.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", p.PasswordHash)
	}
	if err := VerifyPassword(p.PasswordHash, "plain-text-pw"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestLogoutIsNoOp(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
}

func TestUserManagement(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.RegisterUser(ctx, RegisterUserInput{
		Name: "Gerida", Email: "g@x.com", Password: "pw-old", Role: RoleEvaluator,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].ID != created.ID {
		t.Fatalf("unexpected listing: %+v", users)
	}

	newName := "Gerida Atualizada"
	newPassword := "pw-new"
	newRole := RoleAdmin
	updated, err := svc.UpdateUser(ctx, created.ID, UserUpdateInput{
		Name:     &newName,
		Password: &newPassword,
		Role:     &newRole,
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != newName || updated.Role != RoleAdmin {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Old password must stop working, new one must log in.
	if _, err := svc.LoginUser(ctx, "g@x.com", "pw-old"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for old password, got %v", err)
	}
	if _, err := svc.LoginUser(ctx, "g@x.com", "pw-new"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	badRole := "supervisor"
	if _, err := svc.UpdateUser(ctx, created.ID, UserUpdateInput{Role: &badRole}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if err := svc.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.GetUser(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
