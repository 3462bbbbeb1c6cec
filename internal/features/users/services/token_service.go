package users_services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"slices"
	"time"

	users_interfaces "taskboard/internal/features/users/interfaces"
	users_models "taskboard/internal/features/users/models"
	errors_utils "taskboard/internal/util/errors"
	"taskboard/internal/util/metrics"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	refreshTokenBytes = 64

	claimSubject              = "sub"
	claimTokenID              = "jti"
	claimUserID               = "uid"
	claimEmail                = "email"
	claimRole                 = "role"
	claimPasswordCreationTime = "pct"
	claimIssuer               = "iss"
	claimIssuedAt             = "iat"
	claimExpiresAt            = "exp"
)

type TokenSettings struct {
	Issuer               string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
}

// AccessClaims is the claim bundle of an access token. A decoded access
// token yields the same structure.
type AccessClaims struct {
	Subject              string
	TokenID              string
	UserID               uuid.UUID
	Email                string
	Roles                []string
	PasswordCreationTime time.Time
	ExpiresAt            time.Time
}

type IssuedTokens struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresOn time.Time
}

type RotatedRefreshToken struct {
	RefreshToken string
	ExpireOn     time.Time
	Principal    *AccessClaims
}

type TokenService struct {
	refreshTokenStore users_interfaces.RefreshTokenStore
	roleNamesLookup   users_interfaces.RoleNamesLookup
	secretKeyProvider users_interfaces.SecretKeyProvider
	settings          func() TokenSettings
	now               func() time.Time
	logger            *slog.Logger
}

func NewTokenService(
	refreshTokenStore users_interfaces.RefreshTokenStore,
	roleNamesLookup users_interfaces.RoleNamesLookup,
	secretKeyProvider users_interfaces.SecretKeyProvider,
	settings func() TokenSettings,
	logger *slog.Logger,
) *TokenService {
	return &TokenService{
		refreshTokenStore: refreshTokenStore,
		roleNamesLookup:   roleNamesLookup,
		secretKeyProvider: secretKeyProvider,
		settings:          settings,
		now:               func() time.Time { return time.Now().UTC() },
		logger:            logger,
	}
}

// GetClaims builds the claims of a new access token for user. Every call
// mints a new token id.
func (s *TokenService) GetClaims(ctx context.Context, user *users_models.User) (*AccessClaims, error) {
	roleNames, err := s.roleNamesLookup.GetRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	roles := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		if name != "" && !slices.Contains(roles, name) {
			roles = append(roles, name)
		}
	}

	return &AccessClaims{
		Subject:              user.Username,
		TokenID:              uuid.New().String(),
		UserID:               user.ID,
		Email:                user.Email,
		Roles:                roles,
		PasswordCreationTime: user.PasswordCreationTime,
	}, nil
}

// GenerateAccessToken signs claims. It returns the token and its expiry.
func (s *TokenService) GenerateAccessToken(claims *AccessClaims) (string, time.Time, error) {
	secretKey, err := s.secretKeyProvider.GetSecretKey()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to get secret key: %w", err)
	}

	settings := s.settings()
	issuedAt := s.now()
	expiresAt := issuedAt.Add(settings.AccessTokenLifetime)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimSubject:              claims.Subject,
		claimTokenID:              claims.TokenID,
		claimUserID:               claims.UserID.String(),
		claimEmail:                claims.Email,
		claimRole:                 claims.Roles,
		claimPasswordCreationTime: claims.PasswordCreationTime.Unix(),
		claimIssuer:               settings.Issuer,
		claimIssuedAt:             issuedAt.Unix(),
		claimExpiresAt:            expiresAt.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// GetPrincipalFromToken decodes a signed access token. When validateLifetime
// is false an expired token is still accepted, the signature and issuer are
// always checked.
func (s *TokenService) GetPrincipalFromToken(tokenString string, validateLifetime bool) (*AccessClaims, error) {
	secretKey, err := s.secretKeyProvider.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if !validateLifetime {
		options = append(options, jwt.WithoutClaimsValidation())
	}

	mapClaims := jwt.MapClaims{}
	parsedToken, err := jwt.NewParser(options...).ParseWithClaims(
		tokenString,
		mapClaims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		},
	)
	if err != nil || !parsedToken.Valid {
		metrics.InvalidTokens.WithLabelValues("access_token").Inc()
		return nil, errors_utils.NewInvalidToken("invalid token")
	}

	if !mapClaims.VerifyIssuer(s.settings().Issuer, true) {
		metrics.InvalidTokens.WithLabelValues("issuer").Inc()
		return nil, errors_utils.NewInvalidToken("invalid token issuer")
	}

	userIDStr, _ := mapClaims[claimUserID].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil || userID == uuid.Nil {
		metrics.InvalidTokens.WithLabelValues("missing_user_id").Inc()
		return nil, errors_utils.NewInvalidToken("invalid token claims: missing user id")
	}

	principal := &AccessClaims{
		UserID: userID,
		Roles:  roleClaims(mapClaims[claimRole]),
	}
	principal.Subject, _ = mapClaims[claimSubject].(string)
	principal.TokenID, _ = mapClaims[claimTokenID].(string)
	principal.Email, _ = mapClaims[claimEmail].(string)

	if pct, ok := mapClaims[claimPasswordCreationTime].(float64); ok {
		principal.PasswordCreationTime = time.Unix(int64(pct), 0).UTC()
	}
	if exp, ok := mapClaims[claimExpiresAt].(float64); ok {
		principal.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}

	return principal, nil
}

// IssueTokens signs a new access token and stores a new refresh token for
// user. An existing refresh token row is replaced in place.
func (s *TokenService) IssueTokens(ctx context.Context, user *users_models.User) (*IssuedTokens, error) {
	claims, err := s.GetClaims(ctx, user)
	if err != nil {
		return nil, err
	}

	accessToken, accessTokenExpiresAt, err := s.GenerateAccessToken(claims)
	if err != nil {
		return nil, err
	}

	refreshToken, tokenHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}
	expireOn := s.now().Add(s.settings().RefreshTokenLifetime)

	existing, err := s.refreshTokenStore.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.TokenHash = tokenHash
		existing.ExpireOn = expireOn

		if err := s.refreshTokenStore.Update(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		if err := s.refreshTokenStore.Create(ctx, &users_models.RefreshToken{
			ID:        uuid.New(),
			UserID:    user.ID,
			TokenHash: tokenHash,
			ExpireOn:  expireOn,
			CreatedAt: s.now(),
		}); err != nil {
			return nil, err
		}
	}

	metrics.TokensIssued.Inc()

	return &IssuedTokens{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessTokenExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresOn: expireOn,
	}, nil
}

// UpdateRefreshToken rotates the refresh token of the user the access token
// belongs to. The access token may be expired. The presented refresh token
// must match the stored one, after rotation it is no longer accepted.
// The access token is not reissued here.
func (s *TokenService) UpdateRefreshToken(
	ctx context.Context,
	presentedRefreshToken string,
	accessToken string,
) (*RotatedRefreshToken, error) {
	principal, err := s.GetPrincipalFromToken(accessToken, false)
	if err != nil {
		return nil, err
	}

	stored, err := s.refreshTokenStore.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if stored == nil {
		metrics.InvalidTokens.WithLabelValues("refresh_token_missing").Inc()
		return nil, errors_utils.NewInvalidToken("invalid refresh token")
	}

	if !refreshTokenMatches(stored.TokenHash, presentedRefreshToken) {
		metrics.InvalidTokens.WithLabelValues("refresh_token_mismatch").Inc()
		s.logger.Warn("Refresh token mismatch", slog.String("userId", principal.UserID.String()))
		return nil, errors_utils.NewInvalidToken("invalid refresh token")
	}

	if stored.IsExpired(s.now()) {
		metrics.InvalidTokens.WithLabelValues("refresh_token_expired").Inc()
		return nil, errors_utils.NewInvalidToken("refresh token expired")
	}

	refreshToken, tokenHash, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	rotated := *stored
	rotated.TokenHash = tokenHash
	rotated.ExpireOn = s.now().Add(s.settings().RefreshTokenLifetime)

	if err := s.refreshTokenStore.Update(ctx, &rotated); err != nil {
		return nil, err
	}

	metrics.RefreshTokensRotated.Inc()

	return &RotatedRefreshToken{
		RefreshToken: refreshToken,
		ExpireOn:     rotated.ExpireOn,
		Principal:    principal,
	}, nil
}

// DeleteRefreshToken revokes the refresh token of the access token owner.
func (s *TokenService) DeleteRefreshToken(ctx context.Context, accessToken string) error {
	principal, err := s.GetPrincipalFromToken(accessToken, false)
	if err != nil {
		return err
	}

	return s.DeleteRefreshTokenForUser(ctx, principal.UserID)
}

func (s *TokenService) DeleteRefreshTokenForUser(ctx context.Context, userID uuid.UUID) error {
	stored, err := s.refreshTokenStore.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if stored == nil {
		return nil
	}

	return s.refreshTokenStore.Delete(ctx, stored.ID)
}

func generateRefreshToken() (string, string, error) {
	buffer := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(buffer)

	return token, hashRefreshToken(token), nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func refreshTokenMatches(storedHash, presented string) bool {
	if presented == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(hashRefreshToken(presented))) == 1
}

func roleClaims(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		roles := make([]string, 0, len(v))
		for _, item := range v {
			if role, ok := item.(string); ok {
				roles = append(roles, role)
			}
		}
		return roles
	default:
		return []string{}
	}
}
