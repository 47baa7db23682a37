package application

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
)

// PurposePasswordReset scopes tokens minted for the password-reset flow.
const PurposePasswordReset = "password-reset"

func tokenKey(userID, purpose string) string {
	return "token:" + purpose + ":" + userID
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// IdentityService issues and verifies purpose-scoped tokens, authenticates
// login attempts, and rotates passwords.
type IdentityService struct {
	UoWF        repository.Factory
	Tokens      TokenStore
	JWT         *helpers.JWTManager
	Redis       *redis.Client // session storage; nil disables session tracking
	Logger      *logrus.Logger
	TokenTTL    time.Duration // purpose-token lifetime
	RememberTTL time.Duration // refresh-token lifetime for remember-me logins
}

func NewIdentityService(uowf repository.Factory, tokens TokenStore, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, tokenTTL, rememberTTL time.Duration) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	if rememberTTL <= 0 {
		rememberTTL = 30 * 24 * time.Hour
	}
	return &IdentityService{UoWF: uowf, Tokens: tokens, JWT: jwt, Redis: rdb, Logger: logger, TokenTTL: tokenTTL, RememberTTL: rememberTTL}
}

// GetPurposeToken mints a random token bound to (user.ID, purpose). Any
// previously issued token for the same pair is replaced.
func (s *IdentityService) GetPurposeToken(ctx context.Context, user *entity.User, purpose string) (string, error) {
	tok, err := helpers.RandomToken(32)
	if err != nil {
		return "", err
	}
	if err := s.Tokens.Put(ctx, tokenKey(user.ID, purpose), tok, s.TokenTTL); err != nil {
		return "", err
	}
	return tok, nil
}

// GetTokenPassword mints a password-reset token for the user.
func (s *IdentityService) GetTokenPassword(ctx context.Context, user *entity.User) (string, error) {
	return s.GetPurposeToken(ctx, user, PurposePasswordReset)
}

// VerifyUserToken reports whether token matches the active token for
// (user.ID, purpose). The comparison is constant-time so validity does not
// leak through timing.
func (s *IdentityService) VerifyUserToken(ctx context.Context, user *entity.User, purpose, token string) (bool, error) {
	stored, err := s.Tokens.Get(ctx, tokenKey(user.ID, purpose))
	if err != nil {
		return false, err
	}
	if stored == "" || len(stored) != len(token) {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}

// ConsumeToken invalidates the active token for (user.ID, purpose).
func (s *IdentityService) ConsumeToken(ctx context.Context, user *entity.User, purpose string) error {
	return s.Tokens.Del(ctx, tokenKey(user.ID, purpose))
}

// TokenPair carries the session tokens issued on login.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// LoginResult is what a successful login hands back to the controller.
type LoginResult struct {
	User UserDto
	Pair TokenPair
}

// Login authenticates email/password and issues a session. Failures are
// reported through the tagged error kinds so callers can branch on them:
// ErrUserNotFound, ErrUserLocked, ErrPasswordInvalid, ErrPermissionDenied,
// ErrSessionInvalid.
func (s *IdentityService) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().GetByEmail(ctx, email)
	if err != nil {
		helpers.LogError(s.Logger, "IdentityService.Login", err, logrus.Fields{"email": email})
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.Locked {
		return nil, ErrUserLocked
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrPasswordInvalid
	}
	if !entity.IsKnownRole(u.Role) {
		return nil, ErrPermissionDenied
	}

	sid := uuid.NewString()
	refreshTTL := time.Duration(0)
	if remember {
		refreshTTL = s.RememberTTL
	}
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid, u.Role)
	if err != nil {
		helpers.LogError(s.Logger, "IdentityService.Login", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid, refreshTTL)
	if err != nil {
		helpers.LogError(s.Logger, "IdentityService.Login", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"user_name":  u.UserName,
			"email":      u.Email,
			"role":       u.Role,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, time.Until(rexp))
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			helpers.LogError(s.Logger, "IdentityService.Login", rErr, logrus.Fields{"key": key})
			return nil, ErrSessionInvalid
		}
	}

	return &LoginResult{
		User: toUserDto(u),
		Pair: TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp},
	}, nil
}

// Logout drops the user's session.
func (s *IdentityService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		helpers.LogError(s.Logger, "IdentityService.Logout", err, logrus.Fields{"user_id": userID})
	}
}

// UpdateUserPassword rehashes and persists the new password, then
// invalidates any outstanding password-reset token for the user.
func (s *IdentityService) UpdateUserPassword(ctx context.Context, user *entity.User, newPassword string) (bool, error) {
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return false, err
	}
	user.PasswordHash = hash

	uow := s.UoWF.NewUnitOfWork()
	uow.Users().Update(user)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "IdentityService.UpdateUserPassword", err, logrus.Fields{"user_id": user.ID})
		return false, err
	}
	if err := s.ConsumeToken(ctx, user, PurposePasswordReset); err != nil {
		helpers.LogError(s.Logger, "IdentityService.UpdateUserPassword", err, logrus.Fields{"user_id": user.ID})
	}
	return true, nil
}

// GetUserRoles resolves the role names assigned to the user.
func (s *IdentityService) GetUserRoles(ctx context.Context, user *entity.User) ([]string, error) {
	if user == nil || user.Role == "" {
		return nil, nil
	}
	uow := s.UoWF.NewUnitOfWork()
	role, err := uow.Roles().GetByName(ctx, user.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		// Denormalized name with no lookup row; still report it.
		return []string{user.Role}, nil
	}
	return []string{role.Name}, nil
}
