package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/carcatalog/internal/config"
	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/deppfellow/carcatalog/internal/model"
	"github.com/deppfellow/carcatalog/internal/repository"
)

// Claims is the payload of an access token.
type Claims struct {
	jwt.Claims
	Role string `json:"role"`
}

// UserID parses the subject. Tokens are only issued with a uuid subject.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

var ErrInvalidToken = errors.New("invalid token")

const invalidCredentials = "Invalid email or password"

type AuthService struct {
	users  UserRepository
	mailer WelcomeMailer
	cfg    config.AuthConfig
	logger *zerolog.Logger
	now    func() time.Time

	// dummyHash keeps a failed lookup as slow as a failed comparison.
	dummyHash []byte
}

func NewAuthService(users UserRepository, mailer WelcomeMailer, cfg config.AuthConfig, logger *zerolog.Logger) *AuthService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("carcatalog-dummy-password"), cfg.BcryptCost)
	return &AuthService{
		users:     users,
		mailer:    mailer,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// HashPassword hashes password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}

func (s *AuthService) Register(ctx context.Context, p *model.RegisterPayload) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, errs.NewConflictError("Email is already registered", true, errs.Ptr("USER_ALREADY_EXISTS"))
	} else if !isNotFound(err) {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, p.Username); err == nil {
		return nil, errs.NewConflictError("Username is already taken", true, errs.Ptr("USER_ALREADY_EXISTS"))
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, err := s.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, repository.CreateUserParams{
		Username:     p.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to enqueue welcome email")
		}
	}

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, p *model.LoginPayload) (*model.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(p.Email)))
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(p.Password))
		return nil, errs.NewUnauthorizedError(invalidCredentials, true)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(p.Password)); err != nil {
		return nil, errs.NewUnauthorizedError(invalidCredentials, true)
	}

	return s.authResponse(user)
}

func (s *AuthService) Me(ctx context.Context, actor Actor) (*model.User, error) {
	return s.users.GetByID(ctx, actor.ID)
}

func (s *AuthService) authResponse(user *model.User) (*model.AuthResponse, error) {
	token, expiresAt, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      user,
	}, nil
}

func (s *AuthService) signer() (jose.Signer, error) {
	return jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte(s.cfg.SecretKey)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
}

// IssueToken signs an HS256 access token for user.
func (s *AuthService) IssueToken(user *model.User) (string, time.Time, error) {
	sig, err := s.signer()
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "creating token signer")
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := Claims{
		Claims: jwt.Claims{
			Subject:  user.ID.String(),
			Issuer:   s.cfg.Issuer,
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(expiresAt),
		},
		Role: user.Role,
	}

	raw, err := jwt.Signed(sig).Claims(claims).CompactSerialize()
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "signing token")
	}
	return raw, expiresAt, nil
}

// ParseToken verifies the signature, algorithm, issuer and expiry of raw.
// Every failure is reported as ErrInvalidToken.
func (s *AuthService) ParseToken(raw string) (*Claims, error) {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if len(tok.Headers) != 1 || tok.Headers[0].Algorithm != string(jose.HS256) {
		return nil, errors.Wrap(ErrInvalidToken, "unexpected signing algorithm")
	}

	var claims Claims
	if err := tok.Claims([]byte(s.cfg.SecretKey), &claims); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if err := claims.ValidateWithLeeway(jwt.Expected{
		Issuer: s.cfg.Issuer,
		Time:   s.now(),
	}, 0); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if _, err := claims.UserID(); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, "subject is not a user id")
	}

	return &claims, nil
}
