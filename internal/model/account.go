package model

// Admin 管理员，对应 admins
type Admin struct {
	AdminID  int64   `gorm:"primaryKey;autoIncrement"          json:"admin_id"`
	Name     string  `gorm:"type:varchar(100);not null"        json:"name"`
	Email    string  `gorm:"type:varchar(150);not null;unique" json:"email"`
	Password string  `gorm:"type:varchar(255);not null"        json:"-"`
	Phone    *string `gorm:"type:varchar(30)"                  json:"phone,omitempty"`
	IsActive bool    `gorm:"not null;default:true"             json:"is_active"`
	BaseModel
}

func (Admin) TableName() string { return "admins" }

// Teacher 教师，对应 teachers
type Teacher struct {
	TeacherID       int64   `gorm:"primaryKey;autoIncrement"          json:"teacher_id"`
	Name            string  `gorm:"type:varchar(100);not null"        json:"name"`
	Email           string  `gorm:"type:varchar(150);not null;unique" json:"email"`
	Password        string  `gorm:"type:varchar(255);not null"        json:"-"`
	Phone           *string `gorm:"type:varchar(30)"                  json:"phone,omitempty"`
	Gender          *string `gorm:"type:varchar(20)"                  json:"gender,omitempty"`
	Photo           *string `gorm:"type:varchar(255)"                 json:"photo,omitempty"`
	Qualification   *string `gorm:"type:varchar(150)"                 json:"qualification,omitempty"`
	ExperienceYears *int    `gorm:"type:int"                          json:"experience_years,omitempty"`
	IsActive        bool    `gorm:"not null;default:true"             json:"is_active"`
	BaseModel
}

func (Teacher) TableName() string { return "teachers" }

// Parent 家长，对应 parents
type Parent struct {
	ParentID   int64   `gorm:"primaryKey;autoIncrement"          json:"parent_id"`
	Name       string  `gorm:"type:varchar(100);not null"        json:"name"`
	Email      string  `gorm:"type:varchar(150);not null;unique" json:"email"`
	Password   string  `gorm:"type:varchar(255);not null"        json:"-"`
	Phone      *string `gorm:"type:varchar(30)"                  json:"phone,omitempty"`
	Occupation *string `gorm:"type:varchar(100)"                 json:"occupation,omitempty"`
	Address    *string `gorm:"type:varchar(255)"                 json:"address,omitempty"`
	IsActive   bool    `gorm:"not null;default:true"             json:"is_active"`
	BaseModel

	// 关联
	Links []StudentParent `gorm:"foreignKey:ParentID" json:"links,omitempty"`
}

func (Parent) TableName() string { return "parents" }

// StudentParent 学生-家长关联，对应 student_parents
type StudentParent struct {
	ID                int64   `gorm:"primaryKey;autoIncrement"  json:"id"`
	StudentID         int64   `gorm:"not null;index"            json:"student_id"`
	ParentID          int64   `gorm:"not null;index"            json:"parent_id"`
	Relationship      *string `gorm:"type:varchar(30)"          json:"relationship,omitempty"`
	IsPrimaryGuardian bool    `gorm:"not null;default:false"    json:"is_primary_guardian"`
	BaseModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Parent  *Parent  `gorm:"foreignKey:ParentID;references:ParentID"   json:"parent,omitempty"`
}

func (StudentParent) TableName() string { return "student_parents" }

// [自证通过] internal/model/account.go
