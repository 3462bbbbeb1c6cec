package users_services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	users_dto "taskboard/internal/features/users/dto"
	users_enums "taskboard/internal/features/users/enums"
	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"
	users_repositories "taskboard/internal/features/users/repositories"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const RootAdminUsername = "admin"

type UserService struct {
	userRepository     *users_repositories.UserRepository
	userRoleRepository *users_repositories.UserRoleRepository
	tokenService       *TokenService
	logger             *slog.Logger
	// audit log is never nil, DI always set it
	auditLogWriter users_interfaces.AuditLogWriter
}

func NewUserService(
	userRepository *users_repositories.UserRepository,
	userRoleRepository *users_repositories.UserRoleRepository,
	tokenService *TokenService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepository:     userRepository,
		userRoleRepository: userRoleRepository,
		tokenService:       tokenService,
		logger:             logger,
	}
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) error {
	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(request.Email)

	if strings.EqualFold(username, RootAdminUsername) {
		return errors.New("username is reserved")
	}

	existingUser, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return errors.New("user with this username already exists")
	}

	existingUser, err = s.userRepository.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Username:             username,
		Email:                email,
		FirstName:            strings.TrimSpace(request.FirstName),
		LastName:             strings.TrimSpace(request.LastName),
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userRoleRepository.AddRole(user.ID, users_enums.UserRoleUser); err != nil {
		return fmt.Errorf("failed to assign user role: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User registered: %s", user.Username),
		&user.ID,
		nil,
	)

	return nil
}

func (s *UserService) SignIn(
	ctx context.Context,
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByLogin(strings.TrimSpace(request.Login))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil || !user.HasPassword() {
		return nil, errors.New("invalid login or password")
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, errors.New("invalid login or password")
	}

	tokens, err := s.tokenService.IssueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed in: %s", user.Username),
		&user.ID,
		nil,
	)

	return &users_dto.SignInResponseDTO{
		UserID:                user.ID,
		Username:              user.Username,
		Email:                 user.Email,
		Token:                 tokens.AccessToken,
		TokenExpiresAt:        tokens.AccessTokenExpiresAt,
		RefreshToken:          tokens.RefreshToken,
		RefreshTokenExpiresOn: tokens.RefreshTokenExpiresOn,
	}, nil
}

// RefreshTokens rotates the refresh token and signs a new access token from
// the claims of the presented one.
func (s *UserService) RefreshTokens(
	ctx context.Context,
	request *users_dto.RefreshTokenRequestDTO,
) (*users_dto.RefreshTokenResponseDTO, error) {
	rotated, err := s.tokenService.UpdateRefreshToken(ctx, request.RefreshToken, request.Token)
	if err != nil {
		return nil, err
	}

	claims := *rotated.Principal
	claims.TokenID = uuid.New().String()

	accessToken, expiresAt, err := s.tokenService.GenerateAccessToken(&claims)
	if err != nil {
		return nil, err
	}

	return &users_dto.RefreshTokenResponseDTO{
		Token:                 accessToken,
		TokenExpiresAt:        expiresAt,
		RefreshToken:          rotated.RefreshToken,
		RefreshTokenExpiresOn: rotated.ExpireOn,
	}, nil
}

func (s *UserService) SignOut(ctx context.Context, accessToken string) error {
	principal, err := s.tokenService.GetPrincipalFromToken(accessToken, false)
	if err != nil {
		return err
	}

	if err := s.tokenService.DeleteRefreshTokenForUser(ctx, principal.UserID); err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed out: %s", principal.Subject),
		&principal.UserID,
		nil,
	)

	return nil
}

// GetUserFromToken resolves the caller of an unexpired access token. Tokens
// signed before the last password change are rejected.
func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	principal, err := s.tokenService.GetPrincipalFromToken(token, true)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetUserByID(principal.UserID)
	if err != nil {
		return nil, errors_utils.NewInvalidToken("user of the token does not exist")
	}

	if !user.IsActiveUser() {
		return nil, errors_utils.NewInvalidToken("user account is deactivated")
	}

	tokenTimeSeconds := principal.PasswordCreationTime.Truncate(time.Second)
	userTimeSeconds := user.PasswordCreationTime.Truncate(time.Second)
	if !tokenTimeSeconds.Equal(userTimeSeconds) {
		return nil, errors_utils.NewInvalidToken("password has been changed, please sign in again")
	}

	roles, err := s.userRoleRepository.GetRoles(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	user.Roles = roles

	return user, nil
}

func (s *UserService) CreateInitialAdmin() error {
	admin, err := s.userRepository.GetUserByUsername(RootAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		admin = &users_models.User{
			ID:                   uuid.New(),
			Username:             RootAdminUsername,
			Email:                RootAdminUsername,
			HashedPassword:       nil,
			PasswordCreationTime: time.Now().UTC(),
			Status:               users_enums.UserStatusActive,
			CreatedAt:            time.Now().UTC(),
		}

		if err := s.userRepository.CreateUser(admin); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		s.logger.Info("Initial admin user created", slog.String("username", RootAdminUsername))
	}

	if err := s.userRoleRepository.AddRole(admin.ID, users_enums.UserRoleAdministrator); err != nil {
		return fmt.Errorf("failed to assign admin role: %w", err)
	}

	return s.userRoleRepository.AddRole(admin.ID, users_enums.UserRoleUser)
}

func (s *UserService) IsRootAdminHasPassword() (bool, error) {
	admin, err := s.userRepository.GetUserByUsername(RootAdminUsername)
	if err != nil {
		return false, fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		return false, errors.New("admin user does not exist")
	}

	return admin.HasPassword(), nil
}

func (s *UserService) SetRootAdminPassword(password string) error {
	admin, err := s.userRepository.GetUserByUsername(RootAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to get admin user: %w", err)
	}

	if admin == nil {
		return errors.New("admin user does not exist")
	}

	if admin.HasPassword() {
		return errors.New("admin password is already set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(admin.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	s.auditLogWriter.WriteAuditLog("Admin password set", &admin.ID, nil)

	return nil
}

// ResetUserPassword is used by the --new-password command line flag.
func (s *UserService) ResetUserPassword(ctx context.Context, login string, newPassword string) error {
	user, err := s.userRepository.GetUserByLogin(login)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return fmt.Errorf("user %s does not exist", login)
	}

	return s.setPassword(ctx, user, newPassword)
}

func (s *UserService) ChangeUserPassword(
	ctx context.Context,
	user *users_models.User,
	request *users_dto.ChangePasswordRequestDTO,
) error {
	if !user.HasPassword() {
		return errors.New("user has no password set")
	}

	err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.CurrentPassword))
	if err != nil {
		return errors.New("current password is incorrect")
	}

	return s.setPassword(ctx, user, request.NewPassword)
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetUsersByIDs(userIDs []uuid.UUID) ([]*users_models.User, error) {
	return s.userRepository.GetUsersByIDs(userIDs)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return ToUserProfileDTO(user)
}

func ToUserProfileDTO(user *users_models.User) *users_dto.UserProfileResponseDTO {
	roles := user.Roles
	if roles == nil {
		roles = []users_enums.UserRole{}
	}

	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
		IsActive:  user.IsActiveUser(),
		CreatedAt: user.CreatedAt,
	}
}

// setPassword stores a new hash and revokes the refresh token, so every
// session has to sign in again.
func (s *UserService) setPassword(ctx context.Context, user *users_models.User, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenService.DeleteRefreshTokenForUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	s.auditLogWriter.WriteAuditLog("Password changed", &user.ID, nil)

	return nil
}
