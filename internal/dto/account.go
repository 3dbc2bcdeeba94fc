package dto

// ── 管理员 ──

// CreateAdminRequest 创建管理员
type CreateAdminRequest struct {
	Name     string  `json:"name"     binding:"required,min=2,max=100"`
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=64"`
	Phone    *string `json:"phone"    binding:"omitempty,max=30"`
}

// UpdateAdminRequest 更新管理员，password 为空时不修改
type UpdateAdminRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email"`
	Password *string `json:"password"  binding:"omitempty,min=8,max=64"`
	Phone    *string `json:"phone"     binding:"omitempty,max=30"`
	IsActive *bool   `json:"is_active"`
}

// AdminResponse 管理员信息（脱敏）
type AdminResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ── 教师 ──

// CreateTeacherRequest 创建教师
type CreateTeacherRequest struct {
	Name            string  `json:"name"             binding:"required,min=2,max=100"`
	Email           string  `json:"email"            binding:"required,email"`
	Password        string  `json:"password"         binding:"required,min=8,max=64"`
	Phone           *string `json:"phone"            binding:"omitempty,max=30"`
	Gender          *string `json:"gender"           binding:"omitempty,max=20"`
	Photo           *string `json:"photo"            binding:"omitempty,max=255"`
	Qualification   *string `json:"qualification"    binding:"omitempty,max=150"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0,max=60"`
}

// UpdateTeacherRequest 更新教师
type UpdateTeacherRequest struct {
	Name            *string `json:"name"             binding:"omitempty,min=2,max=100"`
	Email           *string `json:"email"            binding:"omitempty,email"`
	Password        *string `json:"password"         binding:"omitempty,min=8,max=64"`
	Phone           *string `json:"phone"            binding:"omitempty,max=30"`
	Gender          *string `json:"gender"           binding:"omitempty,max=20"`
	Photo           *string `json:"photo"            binding:"omitempty,max=255"`
	Qualification   *string `json:"qualification"    binding:"omitempty,max=150"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0,max=60"`
	IsActive        *bool   `json:"is_active"`
}

// SearchRequest 关键字搜索参数
type SearchRequest struct {
	Term string `form:"term" binding:"required,min=1,max=100"`
}

// TeacherResponse 教师信息（脱敏）
type TeacherResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	Photo           *string `json:"photo,omitempty"`
	Qualification   *string `json:"qualification,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// ── 家长 ──

// CreateParentRequest 管理员创建家长，可选同时关联学生
type CreateParentRequest struct {
	Name              string  `json:"name"                binding:"required,min=2,max=100"`
	Email             string  `json:"email"               binding:"required,email"`
	Password          string  `json:"password"            binding:"required,min=8,max=64"`
	Phone             *string `json:"phone"               binding:"omitempty,max=30"`
	Occupation        *string `json:"occupation"          binding:"omitempty,max=100"`
	Address           *string `json:"address"             binding:"omitempty,max=255"`
	StudentID         *int64  `json:"student_id"          binding:"omitempty,gt=0"`
	Relationship      *string `json:"relationship"        binding:"omitempty,max=30"`
	IsPrimaryGuardian bool    `json:"is_primary_guardian"`
}

// UpdateParentRequest 更新家长
type UpdateParentRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Password   *string `json:"password"   binding:"omitempty,min=8,max=64"`
	Phone      *string `json:"phone"      binding:"omitempty,max=30"`
	Occupation *string `json:"occupation" binding:"omitempty,max=100"`
	Address    *string `json:"address"    binding:"omitempty,max=255"`
	IsActive   *bool   `json:"is_active"`
}

// ParentResponse 家长信息（脱敏）
type ParentResponse struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      *string        `json:"phone,omitempty"`
	Occupation *string        `json:"occupation,omitempty"`
	Address    *string        `json:"address,omitempty"`
	IsActive   bool           `json:"is_active"`
	Students   []StudentBrief `json:"students"`
	CreatedAt  string         `json:"created_at"`
	UpdatedAt  string         `json:"updated_at"`
}

// [自证通过] internal/dto/account.go
