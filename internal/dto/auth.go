package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
// role=parent 时需额外提供所关联学生的学号
type LoginRequest struct {
	Role                string `json:"role"                  binding:"required,oneof=admin teacher parent"`
	Email               string `json:"email"                 binding:"required,email"`
	Password            string `json:"password"              binding:"required"`
	StudentEnrollmentNo string `json:"student_enrollment_no" binding:"required_if=Role parent"`
}

// RegisterParentRequest 家长自助注册
type RegisterParentRequest struct {
	Name                string  `json:"name"                  binding:"required,min=2,max=100"`
	Email               string  `json:"email"                 binding:"required,email"`
	Phone               *string `json:"phone"                 binding:"omitempty,max=30"`
	Password            string  `json:"password"              binding:"required,min=8,max=64"`
	StudentEnrollmentNo string  `json:"student_enrollment_no" binding:"required"`
	Relationship        *string `json:"relationship"          binding:"omitempty,max=30"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"` // Access Token 有效期（秒）
	User         UserProfile `json:"user"`
}

// UserProfile 登录用户简要信息
type UserProfile struct {
	ID        int64         `json:"id"`
	Role      string        `json:"role"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Student   *StudentBrief `json:"student,omitempty"` // 仅家长
	CreatedAt string        `json:"created_at,omitempty"`
}

// [自证通过] internal/dto/auth.go
