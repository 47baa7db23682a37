package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/deskhive/helpdesk-api/config"
	"github.com/deskhive/helpdesk-api/internal/domain/entity"
	"github.com/deskhive/helpdesk-api/internal/domain/repository"
	"github.com/deskhive/helpdesk-api/pkg/helpers"
	"github.com/deskhive/helpdesk-api/pkg/mailer"
	tpl "github.com/deskhive/helpdesk-api/pkg/mailer/templates"
	"github.com/deskhive/helpdesk-api/pkg/response"
)

// EmailPublisher enqueues email jobs for the mail worker. Satisfied by
// helpers.RabbitPublisher.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserService orchestrates account CRUD, language preferences, technician
// lookups and the password-recovery flow.
type UserService struct {
	UoWF     repository.Factory
	Identity *IdentityService
	Pub      EmailPublisher // nil disables dispatch
	Logger   *logrus.Logger
	Cfg      *config.Config
}

func NewUserService(uowf repository.Factory, identity *IdentityService, pub EmailPublisher, logger *logrus.Logger, cfg *config.Config) *UserService {
	return &UserService{UoWF: uowf, Identity: identity, Pub: pub, Logger: logger, Cfg: cfg}
}

func (s *UserService) GetAll(ctx context.Context) ([]UserDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	users, err := uow.Users().GetAll(ctx)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetAll", err, nil)
		return nil, err
	}
	return toUserDtos(users), nil
}

// GetByID maps a missing record to an empty DTO, never an error.
func (s *UserService) GetByID(ctx context.Context, id string) (UserDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetByID", err, logrus.Fields{"user_id": id})
		return UserDto{}, err
	}
	return toUserDto(u), nil
}

func (s *UserService) GetByUserName(ctx context.Context, userName string) (UserDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().GetByUserName(ctx, userName)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetByUserName", err, logrus.Fields{"user_name": userName})
		return UserDto{}, err
	}
	return toUserDto(u), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (UserDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().GetByEmail(ctx, email)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetByEmail", err, logrus.Fields{"email": email})
		return UserDto{}, err
	}
	return toUserDto(u), nil
}

// Create validates uniqueness of UserName and Email before staging the new
// account. A non-empty validation list names every offending field.
func (s *UserService) Create(ctx context.Context, dto CreateUserDto, role string) (UserDto, []string, error) {
	uow := s.UoWF.NewUnitOfWork()

	var validationErrs []string
	if taken, err := uow.Users().AnyByUserName(ctx, dto.UserName); err != nil {
		return UserDto{}, nil, err
	} else if taken {
		validationErrs = append(validationErrs, "UserName already exists")
	}
	if taken, err := uow.Users().AnyByEmail(ctx, dto.Email); err != nil {
		return UserDto{}, nil, err
	} else if taken {
		validationErrs = append(validationErrs, "Email already exists")
	}
	if len(validationErrs) > 0 {
		return UserDto{}, validationErrs, nil
	}

	hash, err := helpers.HashPassword(dto.Password)
	if err != nil {
		return UserDto{}, nil, err
	}
	lang := entity.Language(dto.Language)
	if lang != entity.LanguageSpanish {
		lang = entity.LanguageEnglish
	}
	u := &entity.User{
		UserName:     dto.UserName,
		Email:        dto.Email,
		PhoneNumber:  dto.PhoneNumber,
		FullName:     dto.FullName,
		Language:     lang,
		Role:         role,
		PasswordHash: hash,
	}
	uow.Users().Add(u)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "UserService.Create", err, logrus.Fields{"user_name": dto.UserName})
		return UserDto{}, nil, err
	}

	s.enqueueWelcome(ctx, u)
	return toUserDto(u), nil, nil
}

// Update overwrites the editable profile fields; ErrUserNotFound when the
// account is absent.
func (s *UserService) Update(ctx context.Context, userID string, dto CreateUserDto) (UserDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().Get(ctx, userID)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.Update", err, logrus.Fields{"user_id": userID})
		return UserDto{}, err
	}
	if u == nil {
		return UserDto{}, ErrUserNotFound
	}
	u.FullName = dto.FullName
	u.Email = dto.Email
	u.PhoneNumber = dto.PhoneNumber
	u.UserName = dto.UserName
	uow.Users().Update(u)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "UserService.Update", err, logrus.Fields{"user_id": userID})
		return UserDto{}, err
	}
	return toUserDto(u), nil
}

// Remove deletes the account and answers with the response envelope; a miss
// produces an error envelope whose description names the requested id.
func (s *UserService) Remove(ctx context.Context, id string) response.Envelope[bool] {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().Get(ctx, id)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.Remove", err, logrus.Fields{"user_id": id})
		return response.WrapError[bool](response.CodeOtherError, err.Error(), "UserService.Remove")
	}
	if u == nil {
		return response.WrapError[bool](response.CodeUserNotFound, fmt.Sprintf("user %s not found", id), "UserService.Remove")
	}
	uow.Users().Remove(id)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "UserService.Remove", err, logrus.Fields{"user_id": id})
		return response.WrapError[bool](response.CodeOtherError, err.Error(), "UserService.Remove")
	}
	return response.Wrap(true)
}

// ChangeLanguage sets the user's preferred language. A missing user is a
// no-op that still reports success; callers have long relied on that.
func (s *UserService) ChangeLanguage(ctx context.Context, dto ChangeLanguageDto, userID string) (bool, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().Get(ctx, userID)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.ChangeLanguage", err, logrus.Fields{"user_id": userID})
		return false, err
	}
	if u == nil {
		return true, nil
	}
	u.Language = entity.Language(dto.Language)
	uow.Users().Update(u)
	if err := uow.SaveChanges(ctx); err != nil {
		helpers.LogError(s.Logger, "UserService.ChangeLanguage", err, logrus.Fields{"user_id": userID})
		return false, err
	}
	return true, nil
}

// GetRoleByUserID resolves the user's first assigned role record; an empty
// DTO when the user is absent or the role has no lookup row.
func (s *UserService) GetRoleByUserID(ctx context.Context, userID string) (RoleDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().Get(ctx, userID)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetRoleByUserID", err, logrus.Fields{"user_id": userID})
		return RoleDto{}, err
	}
	if u == nil || u.Role == "" {
		return RoleDto{}, nil
	}
	role, err := uow.Roles().GetByName(ctx, u.Role)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetRoleByUserID", err, logrus.Fields{"role": u.Role})
		return RoleDto{}, err
	}
	if role == nil {
		return RoleDto{}, nil
	}
	return RoleDto{ID: role.ID, Name: role.Name}, nil
}

// GetTechnicians lists accounts carrying the SupportTechnician role.
func (s *UserService) GetTechnicians(ctx context.Context) ([]UserDto, error) {
	uow := s.UoWF.NewUnitOfWork()
	users, err := uow.Users().GetByRole(ctx, entity.RoleSupportTechnician)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.GetTechnicians", err, nil)
		return nil, err
	}
	return toUserDtos(users), nil
}

// SendMail reconstructs the account email from the three recovery form
// fields, mints a password-reset token and enqueues a localized recovery
// email. Failures are logged, never raised: the return value is the only
// signal.
func (s *UserService) SendMail(ctx context.Context, username, domain, tld, requestIP string) bool {
	email := ReconstructEmail(username, domain, tld)

	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().GetByEmail(ctx, email)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.SendMail", err, logrus.Fields{"email": email})
		return false
	}
	if u == nil {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Info("recovery mail requested for unknown account")
		}
		return false
	}

	token, err := s.Identity.GetTokenPassword(ctx, u)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.SendMail", err, logrus.Fields{"user_id": u.ID})
		return false
	}

	link := fmt.Sprintf("%s?key=%s&username=%s&domain=%s&tld=%s&token=%s",
		s.Cfg.RecoveryURL, helpers.Hash(email), username, domain, tld, token)

	if !s.Cfg.MailSendEnabled {
		if s.Logger != nil {
			s.Logger.WithField("user_id", u.ID).Info("mail sending disabled, recovery mail skipped")
		}
		return true
	}
	if s.Pub == nil {
		return false
	}

	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.PasswordRecovery,
		Language: u.Language.String(),
		Data: map[string]any{
			"FullName":       u.FullName,
			"RecoveryLink":   link,
			"ExpiresMinutes": int(s.Identity.TokenTTL.Minutes()),
			"IP":             requestIP,
			"CompanyName":    s.Cfg.CompanyName,
			"CompanyAddress": s.Cfg.CompanyAddress,
			"LogoURL":        s.Cfg.LogoURL,
			"SupportURL":     s.Cfg.SupportURL,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "UserService.SendMail", err, logrus.Fields{"user_id": u.ID})
		return false
	}
	return true
}

// ResetPassword reconstructs the email and resolves the account; the
// controller is responsible for verifying the token and rotating the
// password through the identity service.
func (s *UserService) ResetPassword(ctx context.Context, dto ResetPasswordDto) (*entity.User, error) {
	email := ReconstructEmail(dto.UserName, dto.Domain, dto.TLD)
	uow := s.UoWF.NewUnitOfWork()
	u, err := uow.Users().GetByEmail(ctx, email)
	if err != nil {
		helpers.LogError(s.Logger, "UserService.ResetPassword", err, logrus.Fields{"email": email})
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Language: u.Language.String(),
		Data: map[string]any{
			"FullName":       u.FullName,
			"UserName":       u.UserName,
			"CompanyName":    s.Cfg.CompanyName,
			"CompanyAddress": s.Cfg.CompanyAddress,
			"LogoURL":        s.Cfg.LogoURL,
			"SupportURL":     s.Cfg.SupportURL,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "UserService.Create", err, logrus.Fields{"user_id": u.ID})
	}
}
