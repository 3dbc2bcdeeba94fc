package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ── 角色 ──

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
)

// IsValidRole 是否为系统支持的角色
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleTeacher || role == RoleParent
}

// ── 星期 ──

// Weekday 星期枚举，数据库中以英文全称存储（Monday..Sunday）
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// AllWeekdays 按周一到周日排序
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var ErrInvalidWeekday = errors.New("无效的星期，可选值: Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday")

// ParseWeekday 大小写不敏感解析，返回规范写法
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for _, d := range AllWeekdays {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", ErrInvalidWeekday
}

// IsValidWeekday 供绑定层 weekday 标签使用
func IsValidWeekday(s string) bool {
	_, err := ParseWeekday(s)
	return err == nil
}

// Index 周一为 0，周日为 6；非法值返回 -1
func (d Weekday) Index() int {
	for i, w := range AllWeekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// ── 时刻 ──

// ClockTime 一天内的时刻，精度为分钟，对应 PostgreSQL TIME 列
// JSON 中以 "HH:MM" 表示
type ClockTime int

var ErrInvalidClock = errors.New("无效的时间，格式应为 HH:MM")

// NewClockTime 由时、分构造
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClock 解析 "HH:MM" 或 "HH:MM:00"
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidClock
	}
	if len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, ErrInvalidClock
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidClock
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidClock
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec != 0 {
			return 0, ErrInvalidClock
		}
	}
	return NewClockTime(h, m), nil
}

// IsValidClock 供绑定层 clock 标签使用
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

func (t ClockTime) Hour() int   { return int(t) / 60 }
func (t ClockTime) Minute() int { return int(t) % 60 }

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Before 严格早于
func (t ClockTime) Before(o ClockTime) bool { return t < o }

// Scan 兼容驱动返回的 "15:04:05[.ffffff]" 文本或 time.Time，秒以下截断
func (t *ClockTime) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case []byte:
		s = string(v)
	case string:
		s = v
	case time.Time:
		*t = NewClockTime(v.Hour(), v.Minute())
		return nil
	default:
		return fmt.Errorf("ClockTime.Scan: unsupported type %T", src)
	}
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return fmt.Errorf("ClockTime.Scan: invalid value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("ClockTime.Scan: invalid hour %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("ClockTime.Scan: invalid minute %q: %w", s, err)
	}
	*t = NewClockTime(h, m)
	return nil
}

// Value 以 "HH:MM:00" 写入 TIME 列
func (t ClockTime) Value() (driver.Value, error) {
	return t.String() + ":00", nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrInvalidClock
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ── 审计字段 ──

// BaseModel 通用时间戳（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VersionedModel 支持乐观锁
type VersionedModel struct {
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// [自证通过] internal/model/base.go
