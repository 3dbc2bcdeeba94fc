package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
	"parent-teacher-bridge/backend/pkg/jwt"
)

var (
	ErrInvalidCredentials  = errors.New("邮箱、密码或学号错误")
	ErrAccountDisabled     = errors.New("账号已停用")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrInvalidRefreshToken = errors.New("refresh token 无效或已失效")
	ErrEnrollmentNotFound  = errors.New("学号对应的学生不存在")
)

// TokenBlacklist Token 黑名单存储，Redis 不可用时为 nil
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RegisterParent(ctx context.Context, req *dto.RegisterParentRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID int64, role string) (*dto.UserProfile, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

// account 三类账号登录所需的公共字段
type account struct {
	id        int64
	role      string
	name      string
	email     string
	hash      string
	active    bool
	student   *model.Student
	createdAt time.Time
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	acc, err := s.findAccount(ctx, req.Role, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询登录账号失败", zap.String("role", req.Role), zap.Error(err))
		return nil, err
	}

	if !checkPassword(acc.hash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !acc.active {
		return nil, ErrAccountDisabled
	}

	// 家长需额外核对所关联学生的学号
	if acc.role == model.RoleParent {
		student, err := s.matchLinkedStudent(ctx, acc.id, req.StudentEnrollmentNo)
		if err != nil {
			return nil, err
		}
		acc.student = student
	}

	s.logger.Info("用户登录", zap.String("role", acc.role), zap.Int64("user_id", acc.id))
	return s.issueTokens(acc)
}

func (s *authService) RegisterParent(ctx context.Context, req *dto.RegisterParentRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.repo.Parent.GetByEmail(ctx, email); err == nil {
		return nil, ErrParentEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	student, err := s.repo.Student.GetByEnrollmentNo(ctx, strings.TrimSpace(req.StudentEnrollmentNo))
	if err != nil {
		return nil, notFoundOr(err, ErrEnrollmentNotFound)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	parent := &model.Parent{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Phone:    req.Phone,
		IsActive: true,
	}
	link := &model.StudentParent{
		StudentID:         student.StudentID,
		Relationship:      req.Relationship,
		IsPrimaryGuardian: true,
	}
	if err := s.repo.Parent.CreateWithLink(ctx, parent, link); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrParentEmailExists
		}
		s.logger.Error("家长注册失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("家长注册成功", zap.Int64("parent_id", parent.ParentID), zap.Int64("student_id", student.StudentID))
	return s.issueTokens(&account{
		id:        parent.ParentID,
		role:      model.RoleParent,
		name:      parent.Name,
		email:     parent.Email,
		active:    true,
		student:   student,
		createdAt: parent.CreatedAt,
	})
}

// Refresh 旧 refresh token 作废后签发新的 Token 对
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("检查 Token 黑名单失败", zap.Error(err))
		} else if revoked {
			return nil, ErrInvalidRefreshToken
		}
	}

	acc, err := s.accountByID(ctx, claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !acc.active {
		return nil, ErrAccountDisabled
	}

	if s.blacklist != nil {
		if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
			s.logger.Warn("作废旧 refresh token 失败", zap.Error(err))
		}
	}
	return s.issueTokens(acc)
}

// Logout 将当前 access token 加入黑名单；无 Redis 时直接返回
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID int64, role string) (*dto.UserProfile, error) {
	acc, err := s.accountByID(ctx, userID, role)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	if acc.role == model.RoleParent {
		students, err := s.repo.Parent.LinkedStudents(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(students) > 0 {
			acc.student = &students[0]
		}
	}
	profile := toUserProfile(acc)
	return &profile, nil
}

func (s *authService) findAccount(ctx context.Context, role, email string) (*account, error) {
	switch role {
	case model.RoleAdmin:
		a, err := s.repo.Admin.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return adminAccount(a), nil
	case model.RoleTeacher:
		t, err := s.repo.Teacher.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return teacherAccount(t), nil
	case model.RoleParent:
		p, err := s.repo.Parent.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return parentAccount(p), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *authService) accountByID(ctx context.Context, id int64, role string) (*account, error) {
	switch role {
	case model.RoleAdmin:
		a, err := s.repo.Admin.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return adminAccount(a), nil
	case model.RoleTeacher:
		t, err := s.repo.Teacher.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return teacherAccount(t), nil
	case model.RoleParent:
		p, err := s.repo.Parent.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return parentAccount(p), nil
	}
	return nil, gorm.ErrRecordNotFound
}

// matchLinkedStudent 学号比较忽略大小写与首尾空白
func (s *authService) matchLinkedStudent(ctx context.Context, parentID int64, enrollmentNo string) (*model.Student, error) {
	want := strings.TrimSpace(enrollmentNo)
	if want == "" {
		return nil, ErrInvalidCredentials
	}
	students, err := s.repo.Parent.LinkedStudents(ctx, parentID)
	if err != nil {
		s.logger.Error("查询家长关联学生失败", zap.Int64("parent_id", parentID), zap.Error(err))
		return nil, err
	}
	for i := range students {
		if strings.EqualFold(strings.TrimSpace(students[i].EnrollmentNo), want) {
			return &students[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (s *authService) issueTokens(acc *account) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(acc.id, acc.role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(acc.id, acc.role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserProfile(acc),
	}, nil
}

func adminAccount(a *model.Admin) *account {
	return &account{id: a.AdminID, role: model.RoleAdmin, name: a.Name, email: a.Email,
		hash: a.Password, active: a.IsActive, createdAt: a.CreatedAt}
}

func teacherAccount(t *model.Teacher) *account {
	return &account{id: t.TeacherID, role: model.RoleTeacher, name: t.Name, email: t.Email,
		hash: t.Password, active: t.IsActive, createdAt: t.CreatedAt}
}

func parentAccount(p *model.Parent) *account {
	return &account{id: p.ParentID, role: model.RoleParent, name: p.Name, email: p.Email,
		hash: p.Password, active: p.IsActive, createdAt: p.CreatedAt}
}

func toUserProfile(acc *account) dto.UserProfile {
	profile := dto.UserProfile{
		ID:    acc.id,
		Role:  acc.role,
		Name:  acc.name,
		Email: acc.email,
	}
	if !acc.createdAt.IsZero() {
		profile.CreatedAt = dto.FormatTimestamp(acc.createdAt)
	}
	if acc.student != nil {
		profile.Student = toStudentBrief(acc.student)
	}
	return profile
}

// [自证通过] internal/service/auth_service.go
