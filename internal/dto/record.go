package dto

// ── 考勤 ──

// CreateAttendanceRequest 登记考勤
type CreateAttendanceRequest struct {
	StudentID int64   `json:"student_id" binding:"required,gt=0"`
	ClassID   int64   `json:"class_id"   binding:"required,gt=0"`
	Date      string  `json:"date"       binding:"required,datetime=2006-01-02"`
	Status    string  `json:"status"     binding:"required,oneof=present absent late excused"`
	Remark    *string `json:"remark"     binding:"omitempty,max=255"`
}

// UpdateAttendanceRequest 修改考勤
type UpdateAttendanceRequest struct {
	Date   *string `json:"date"   binding:"omitempty,datetime=2006-01-02"`
	Status *string `json:"status" binding:"omitempty,oneof=present absent late excused"`
	Remark *string `json:"remark" binding:"omitempty,max=255"`
}

// ClassAttendanceQuery 按班级与日期查询
type ClassAttendanceQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// AttendanceResponse 考勤记录
type AttendanceResponse struct {
	ID         int64         `json:"id"`
	Student    *StudentBrief `json:"student,omitempty"`
	StudentID  int64         `json:"student_id"`
	ClassID    int64         `json:"class_id"`
	Date       string        `json:"date"`
	Status     string        `json:"status"`
	Remark     *string       `json:"remark,omitempty"`
	MarkedTime *string       `json:"marked_time,omitempty"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
}

// ── 行为记录 ──

// BehaviourRequest 创建/更新行为记录
type BehaviourRequest struct {
	IncidentDate      string  `json:"incident_date"      binding:"required,datetime=2006-01-02"`
	BehaviourCategory string  `json:"behaviour_category" binding:"required,max=50"`
	Severity          string  `json:"severity"           binding:"required,oneof=low medium high"`
	Description       *string `json:"description"        binding:"omitempty,max=2000"`
	NotifyParent      bool    `json:"notify_parent"`
}

// BehaviourResponse 行为记录
type BehaviourResponse struct {
	ID                int64         `json:"id"`
	StudentID         int64         `json:"student_id"`
	Teacher           *TeacherBrief `json:"teacher,omitempty"`
	IncidentDate      string        `json:"incident_date"`
	BehaviourCategory string        `json:"behaviour_category"`
	Severity          string        `json:"severity"`
	Description       *string       `json:"description,omitempty"`
	NotifyParent      bool          `json:"notify_parent"`
	CreatedAt         string        `json:"created_at"`
	UpdatedAt         string        `json:"updated_at"`
}

// ── 成绩 ──

// CreatePerformanceRequest 录入成绩，grade 为空时按百分比推导
type CreatePerformanceRequest struct {
	StudentID     int64    `json:"student_id"     binding:"required,gt=0"`
	SubjectID     int64    `json:"subject_id"     binding:"required,gt=0"`
	ExamType      string   `json:"exam_type"      binding:"required,max=50"`
	MarksObtained *float64 `json:"marks_obtained" binding:"required,gte=0"`
	MaxMarks      float64  `json:"max_marks"      binding:"required,gt=0"`
	Grade         *string  `json:"grade"          binding:"omitempty,max=5"`
	ExamDate      *string  `json:"exam_date"      binding:"omitempty,datetime=2006-01-02"`
	Remarks       *string  `json:"remarks"        binding:"omitempty,max=255"`
}

// PerformanceResponse 成绩记录
type PerformanceResponse struct {
	ID            int64         `json:"id"`
	StudentID     int64         `json:"student_id"`
	Subject       *SubjectBrief `json:"subject,omitempty"`
	Teacher       *TeacherBrief `json:"teacher,omitempty"`
	ExamType      string        `json:"exam_type"`
	MarksObtained float64       `json:"marks_obtained"`
	MaxMarks      float64       `json:"max_marks"`
	Percentage    float64       `json:"percentage"`
	Grade         string        `json:"grade"`
	ExamDate      *string       `json:"exam_date,omitempty"`
	Remarks       *string       `json:"remarks,omitempty"`
	CreatedAt     string        `json:"created_at"`
}

// ── 活动 ──

// EventRequest 创建/更新活动
type EventRequest struct {
	Title       string  `json:"title"       binding:"required,max=150"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	EventDate   string  `json:"event_date"  binding:"required,datetime=2006-01-02"`
	StartTime   *string `json:"start_time"  binding:"omitempty,clock"`
	EndTime     *string `json:"end_time"    binding:"omitempty,clock"`
	Venue       *string `json:"venue"       binding:"omitempty,max=150"`
	EventType   *string `json:"event_type"  binding:"omitempty,max=50"`
	IsActive    *bool   `json:"is_active"`
}

// EventResponse 活动信息
type EventResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	EventDate   string  `json:"event_date"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Venue       *string `json:"venue,omitempty"`
	EventType   *string `json:"event_type,omitempty"`
	TeacherID   *int64  `json:"teacher_id,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ── 站内消息 ──

// SendMessageRequest 发送消息
type SendMessageRequest struct {
	ReceiverID     int64   `json:"receiver_id"     binding:"required,gt=0"`
	ReceiverRole   string  `json:"receiver_role"   binding:"required,oneof=admin teacher parent"`
	MessageContext *string `json:"message_context" binding:"omitempty,max=100"`
	Message        string  `json:"message"         binding:"required,max=4000"`
}

// ConversationQuery 会话查询参数
type ConversationQuery struct {
	WithID   int64  `form:"with_id"   binding:"required,gt=0"`
	WithRole string `form:"with_role" binding:"required,oneof=admin teacher parent"`
}

// MessageResponse 消息
type MessageResponse struct {
	ID             int64   `json:"id"`
	SenderID       int64   `json:"sender_id"`
	SenderRole     string  `json:"sender_role"`
	ReceiverID     int64   `json:"receiver_id"`
	ReceiverRole   string  `json:"receiver_role"`
	MessageContext *string `json:"message_context,omitempty"`
	Message        string  `json:"message"`
	SentAt         string  `json:"sent_at"`
	ReadAt         *string `json:"read_at,omitempty"`
}

// [自证通过] internal/dto/record.go
