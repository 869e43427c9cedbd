package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Service is the credential service: registration, credential verification
// and token issuance for both principal kinds through one pipeline.
type Service struct {
	store  Store
	tokens *TokenIssuer
}

// NewService wires the account store and token issuer together.
func NewService(store Store, tokens *TokenIssuer) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	if tokens == nil {
		return nil, errors.New("auth: token issuer is required")
	}
	return &Service{store: store, tokens: tokens}, nil
}

// RegisterUserInput is the payload for platform-user registration.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// RegisterOwnerInput is the payload for proprietário registration.
type RegisterOwnerInput struct {
	Email    string
	Password string
	Profile  OwnerProfile
}

// UserLogin is the result of a successful user login.
type UserLogin struct {
	Token     string
	ExpiresAt time.Time
	User      UserSummary
}

// OwnerLogin is the result of a successful proprietário login.
type OwnerLogin struct {
	Token     string
	ExpiresAt time.Time
	Owner     OwnerSummary
}

// RegisterUser creates a platform user with a hashed credential. The
// plaintext never reaches the store and never appears in the result.
func (s *Service) RegisterUser(ctx context.Context, in RegisterUserInput) (UserSummary, error) {
	if err := validateUserInput(in); err != nil {
		return UserSummary{}, err
	}
	p, err := s.register(ctx, Principal{
		Kind:  KindUser,
		Email: in.Email,
		Name:  in.Name,
		Role:  in.Role,
	}, in.Password)
	if err != nil {
		return UserSummary{}, err
	}
	return userSummary(p), nil
}

// RegisterOwner creates a proprietário with its self-declared profile.
func (s *Service) RegisterOwner(ctx context.Context, in RegisterOwnerInput) (OwnerSummary, error) {
	if err := validateOwnerInput(in); err != nil {
		return OwnerSummary{}, err
	}
	profile := in.Profile
	p, err := s.register(ctx, Principal{
		Kind:    KindOwner,
		Email:   in.Email,
		Name:    profile.FullName,
		Profile: &profile,
	}, in.Password)
	if err != nil {
		return OwnerSummary{}, err
	}
	return ownerSummary(p), nil
}

// LoginUser verifies user credentials and issues a token whose claims carry
// the principal id and role.
func (s *Service) LoginUser(ctx context.Context, email, password string) (UserLogin, error) {
	token, exp, p, err := s.login(ctx, KindUser, email, password)
	if err != nil {
		return UserLogin{}, err
	}
	return UserLogin{Token: token, ExpiresAt: exp, User: userSummary(p)}, nil
}

// LoginOwner verifies proprietário credentials and issues a token whose
// claims additionally carry email and full name.
func (s *Service) LoginOwner(ctx context.Context, email, password string) (OwnerLogin, error) {
	token, exp, p, err := s.login(ctx, KindOwner, email, password)
	if err != nil {
		return OwnerLogin{}, err
	}
	return OwnerLogin{Token: token, ExpiresAt: exp, Owner: ownerSummary(p)}, nil
}

// Logout acknowledges the request and nothing else. Tokens are stateless and
// there is no revocation store, so "logging out" happens client-side by
// discarding the token; the endpoint exists for API compatibility.
func (s *Service) Logout(ctx context.Context) error {
	return nil
}

// register runs the shared credential pipeline: duplicate lookup first (for
// the friendly conflict error), then hash, then insert. The insert can still
// hit the storage unique index when a concurrent call wins the race; that
// also surfaces as ErrEmailTaken, so the invariant holds either way.
func (s *Service) register(ctx context.Context, p Principal, password string) (Principal, error) {
	if _, err := s.store.FindByEmail(ctx, p.Kind, p.Email); err == nil {
		return Principal{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Principal{}, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return Principal{}, err
	}
	p.PasswordHash = hash
	return s.store.Insert(ctx, p)
}

func (s *Service) login(ctx context.Context, kind Kind, email, password string) (string, time.Time, Principal, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", time.Time{}, Principal{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	p, err := s.store.FindByEmail(ctx, kind, email)
	if err != nil {
		return "", time.Time{}, Principal{}, err
	}
	if err := VerifyPassword(p.PasswordHash, password); err != nil {
		return "", time.Time{}, Principal{}, ErrInvalidCredentials
	}
	token, exp, err := s.tokens.IssueFor(p)
	if err != nil {
		return "", time.Time{}, Principal{}, err
	}
	return token, exp, p, nil
}

func validateUserInput(in RegisterUserInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	switch in.Role {
	case RoleAdmin, RoleEvaluator, RoleOwner:
		return nil
	default:
		return fmt.Errorf("%w: unsupported role %q", ErrInvalidInput, in.Role)
	}
}

func validateOwnerInput(in RegisterOwnerInput) error {
	if strings.TrimSpace(in.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if in.Password == "" {
		return fmt.Errorf("%w: senha is required", ErrInvalidInput)
	}
	required := []struct {
		field string
		value string
	}{
		{"nomeCompleto", in.Profile.FullName},
		{"cpf", in.Profile.CPF},
		{"numeroCAR", in.Profile.CARNumber},
		{"disponibilidadeAgua", in.Profile.WaterAvailability},
		{"vegetacaoAoRedor", in.Profile.SurroundingVegetation},
		{"corAgua", in.Profile.WaterColor},
	}
	for _, req := range required {
		if strings.TrimSpace(req.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, req.field)
		}
	}
	return nil
}
