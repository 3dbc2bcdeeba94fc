package dto

// ── 班级 ──

// ClassRequest 创建/更新班级
type ClassRequest struct {
	Name           string  `json:"name"             binding:"required,min=1,max=50"`
	Section        *string `json:"section"          binding:"omitempty,max=20"`
	ClassTeacherID *int64  `json:"class_teacher_id" binding:"omitempty,gt=0"`
}

// ClassResponse 班级信息
type ClassResponse struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Section      *string       `json:"section,omitempty"`
	ClassTeacher *TeacherBrief `json:"class_teacher,omitempty"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// ── 科目 ──

// SubjectRequest 创建/更新科目
type SubjectRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Code string `json:"code" binding:"required,min=1,max=20"`
}

// SubjectResponse 科目信息
type SubjectResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ── 学生 ──

// StudentRequest 创建/更新学生
type StudentRequest struct {
	Name         string  `json:"name"          binding:"required,min=1,max=100"`
	Dob          *string `json:"dob"           binding:"omitempty,datetime=2006-01-02"`
	Gender       *string `json:"gender"        binding:"omitempty,max=20"`
	EnrollmentNo string  `json:"enrollment_no" binding:"required,min=1,max=50"`
	BloodGroup   *string `json:"blood_group"   binding:"omitempty,max=5"`
	ClassID      *int64  `json:"class_id"      binding:"omitempty,gt=0"`
	ProfilePhoto *string `json:"profile_photo" binding:"omitempty,max=255"`
}

// StudentResponse 学生信息
type StudentResponse struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Dob          *string     `json:"dob,omitempty"`
	Gender       *string     `json:"gender,omitempty"`
	EnrollmentNo string      `json:"enrollment_no"`
	BloodGroup   *string     `json:"blood_group,omitempty"`
	Class        *ClassBrief `json:"class,omitempty"`
	ProfilePhoto *string     `json:"profile_photo,omitempty"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
}

// [自证通过] internal/dto/school.go
