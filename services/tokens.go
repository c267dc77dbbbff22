package services

import (
	"context"
	"errors"
	"fmt"
	"hostel-server/models"
	"hostel-server/utils"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const refreshKeyPrefix = "refresh_token:"

var errRefreshDisabled = errors.New("refresh tokens are disabled")

type TokenConfig struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// TokenService signs access tokens and keeps refresh tokens in Redis.
// Without a Redis client only access tokens are issued.
type TokenService struct {
	accessSigner    *jwt.Signer
	accessVerifier  *jwt.Verifier
	refreshSigner   *jwt.Signer
	refreshVerifier *jwt.Verifier
	refreshTTL      time.Duration
	redis           *redis.Client
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func NewTokenService(cfg TokenConfig, rdb *redis.Client) *TokenService {
	return &TokenService{
		accessSigner:    jwt.NewSigner(jwt.HS256, []byte(cfg.AccessSecret), cfg.AccessTTL),
		accessVerifier:  jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessSecret)),
		refreshSigner:   jwt.NewSigner(jwt.HS256, []byte(cfg.RefreshSecret), cfg.RefreshTTL),
		refreshVerifier: jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshSecret)),
		refreshTTL:      cfg.RefreshTTL,
		redis:           rdb,
	}
}

func (s *TokenService) SignAccessToken(user *models.User) (string, error) {
	token, err := s.accessSigner.Sign(utils.AccessToken{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", err
	}
	return string(token), nil
}

func (s *TokenService) VerifyAccessToken(token string) (*utils.AccessToken, error) {
	verified, err := s.accessVerifier.VerifyToken([]byte(token))
	if err != nil {
		return nil, err
	}
	var claims utils.AccessToken
	if err := verified.Claims(&claims); err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no user id")
	}
	return &claims, nil
}

// CreateTokenPair signs an access token and, when Redis is configured, a
// refresh token that is stored until it expires or is used.
func (s *TokenService) CreateTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := s.SignAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	pair := &TokenPair{AccessToken: access}
	if s.redis == nil {
		return pair, nil
	}

	claims := jwt.Claims{
		ID:      uuid.NewString(),
		Subject: strconv.FormatUint(uint64(user.ID), 10),
	}
	refresh, err := s.refreshSigner.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}
	pair.RefreshToken = string(refresh)

	if err := s.redis.Set(ctx, refreshKeyPrefix+pair.RefreshToken, claims.Subject, s.refreshTTL).Err(); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}
	return pair, nil
}

// ConsumeRefreshToken validates a refresh token, deletes it and returns the
// user id it was issued for.
func (s *TokenService) ConsumeRefreshToken(ctx context.Context, token string) (uint, error) {
	if s.redis == nil {
		return 0, errRefreshDisabled
	}

	verified, err := s.refreshVerifier.VerifyToken([]byte(token))
	if err != nil {
		return 0, err
	}

	deleted, err := s.redis.Del(ctx, refreshKeyPrefix+token).Result()
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, errors.New("refresh token was revoked or already used")
	}

	id, err := strconv.ParseUint(verified.StandardClaims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("refresh token subject: %w", err)
	}
	return uint(id), nil
}

func (s *TokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	if s.redis == nil || token == "" {
		return nil
	}
	return s.redis.Del(ctx, refreshKeyPrefix+token).Err()
}
