package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/model"
)

// ── Attendance ──

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, a *model.Attendance) error
	GetByID(ctx context.Context, id int64) (*model.Attendance, error)
	GetByStudentAndDate(ctx context.Context, studentID int64, date datatypes.Date) (*model.Attendance, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Attendance, error)
	ListByClassAndDate(ctx context.Context, classID int64, date datatypes.Date) ([]model.Attendance, error)
	Update(ctx context.Context, a *model.Attendance) error
	Delete(ctx context.Context, id int64) error
}

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit("Student", "Class").Create(a).Error
}

func (r *attendanceRepo) GetByID(ctx context.Context, id int64) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("attendance_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) GetByStudentAndDate(ctx context.Context, studentID int64, date datatypes.Date) (*model.Attendance, error) {
	var a model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ?", studentID, date).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) ListByClassAndDate(ctx context.Context, classID int64, date datatypes.Date) ([]model.Attendance, error) {
	var list []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("class_id = ? AND date = ?", classID, date).
		Order("student_id ASC").
		Find(&list).Error
	return list, err
}

func (r *attendanceRepo) Update(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Omit("Student", "Class").Save(a).Error
}

func (r *attendanceRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Attendance{}, "attendance_id", id)
}

// ── Behaviour ──

// BehaviourRepository 行为记录数据访问接口
type BehaviourRepository interface {
	Create(ctx context.Context, b *model.Behaviour) error
	GetByID(ctx context.Context, id int64) (*model.Behaviour, error)
	// ListByStudent teacherID > 0 时仅返回该教师记录
	ListByStudent(ctx context.Context, studentID, teacherID int64) ([]model.Behaviour, error)
	Update(ctx context.Context, b *model.Behaviour) error
	Delete(ctx context.Context, id int64) error
}

type behaviourRepo struct {
	db *gorm.DB
}

func NewBehaviourRepo(db *gorm.DB) BehaviourRepository {
	return &behaviourRepo{db: db}
}

func (r *behaviourRepo) Create(ctx context.Context, b *model.Behaviour) error {
	return r.db.WithContext(ctx).Omit("Student", "Teacher").Create(b).Error
}

func (r *behaviourRepo) GetByID(ctx context.Context, id int64) (*model.Behaviour, error) {
	var b model.Behaviour
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("behaviour_id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *behaviourRepo) ListByStudent(ctx context.Context, studentID, teacherID int64) ([]model.Behaviour, error) {
	var list []model.Behaviour
	db := r.db.WithContext(ctx).Preload("Teacher").Where("student_id = ?", studentID)
	if teacherID > 0 {
		db = db.Where("teacher_id = ?", teacherID)
	}
	err := db.Order("incident_date DESC, behaviour_id DESC").Find(&list).Error
	return list, err
}

func (r *behaviourRepo) Update(ctx context.Context, b *model.Behaviour) error {
	return r.db.WithContext(ctx).Omit("Student", "Teacher").Save(b).Error
}

func (r *behaviourRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Behaviour{}, "behaviour_id", id)
}

// ── Performance ──

// PerformanceRepository 成绩数据访问接口
type PerformanceRepository interface {
	Create(ctx context.Context, p *model.Performance) error
	GetByID(ctx context.Context, id int64) (*model.Performance, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Performance, error)
	Delete(ctx context.Context, id int64) error
}

type performanceRepo struct {
	db *gorm.DB
}

func NewPerformanceRepo(db *gorm.DB) PerformanceRepository {
	return &performanceRepo{db: db}
}

func (r *performanceRepo) Create(ctx context.Context, p *model.Performance) error {
	return r.db.WithContext(ctx).Omit("Subject", "Teacher").Create(p).Error
}

func (r *performanceRepo) GetByID(ctx context.Context, id int64) (*model.Performance, error) {
	var p model.Performance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("performance_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *performanceRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Performance, error) {
	var list []model.Performance
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("exam_date DESC NULLS LAST, performance_id DESC").
		Find(&list).Error
	return list, err
}

func (r *performanceRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Performance{}, "performance_id", id)
}

// ── Event ──

// EventRepository 活动数据访问接口
type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	List(ctx context.Context, activeOnly bool) ([]model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id int64) error
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	if err := r.db.WithContext(ctx).Where("event_id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepo) List(ctx context.Context, activeOnly bool) ([]model.Event, error) {
	var list []model.Event
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("event_date ASC, start_time ASC NULLS FIRST").Find(&list).Error
	return list, err
}

func (r *eventRepo) Update(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *eventRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Event{}, "event_id", id)
}

// ── Message ──

// MessageRepository 站内消息数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	Inbox(ctx context.Context, receiverID int64, receiverRole string) ([]model.Message, error)
	Conversation(ctx context.Context, aID int64, aRole string, bID int64, bRole string) ([]model.Message, error)
	// MarkRead 仅在未读时写入 read_at
	MarkRead(ctx context.Context, id int64, at time.Time) error
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).Where("message_id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) Inbox(ctx context.Context, receiverID int64, receiverRole string) ([]model.Message, error) {
	var list []model.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND receiver_role = ?", receiverID, receiverRole).
		Order("sent_at DESC").
		Find(&list).Error
	return list, err
}

func (r *messageRepo) Conversation(ctx context.Context, aID int64, aRole string, bID int64, bRole string) ([]model.Message, error) {
	var list []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND sender_role = ? AND receiver_id = ? AND receiver_role = ?) OR "+
			"(sender_id = ? AND sender_role = ? AND receiver_id = ? AND receiver_role = ?)",
			aID, aRole, bID, bRole, bID, bRole, aID, aRole).
		Order("sent_at ASC").
		Find(&list).Error
	return list, err
}

func (r *messageRepo) MarkRead(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("message_id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

// [自证通过] internal/repository/record_repo.go
