package service

import (
	"context"
	"errors"
	"testing"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
)

// ── 测试辅助 ──

// setupTimetableFixture 班级 5、8，教师 7、9，科目 1
func setupTimetableFixture() (TimetableService, *mockRepos) {
	m := newMockRepos()
	m.class.nextID = 4
	m.class.add("五年级")
	m.class.nextID = 7
	m.class.add("八年级")
	m.teacher.nextID = 6
	m.teacher.add("Alice")
	m.teacher.nextID = 8
	m.teacher.add("Bob")
	m.subject.add("数学", "MATH")
	return NewTimetableService(m.repository(), testLogger()), m
}

func slotRequest(classID, teacherID int64, weekday, start, end string) *dto.TimetableRequest {
	return &dto.TimetableRequest{
		ClassID:   classID,
		SubjectID: 1,
		TeacherID: teacherID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
	}
}

func candidate(classID, teacherID int64, day model.Weekday, start, end string) *model.Timetable {
	s, _ := model.ParseClock(start)
	e, _ := model.ParseClock(end)
	return &model.Timetable{ClassID: classID, TeacherID: teacherID, Weekday: day, StartTime: s, EndTime: e}
}

// ════════════════════════════════════════════════════════════
// 冲突检查
// ════════════════════════════════════════════════════════════

func TestHasConflict_ClassAxis(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"部分重叠-后半段", "09:30", "10:30", true},
		{"部分重叠-前半段", "08:30", "09:30", true},
		{"完全包含", "09:15", "09:45", true},
		{"完全覆盖", "08:00", "11:00", true},
		{"区间相同", "09:00", "10:00", true},
		{"紧接其后", "10:00", "11:00", false},
		{"紧接其前", "08:00", "09:00", false},
		{"完全错开", "13:00", "14:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockRepos()
			m.timetable.seed(5, 7, model.Monday, "09:00", "10:00")

			got, err := HasConflict(context.Background(), m.timetable, AxisClass,
				candidate(5, 99, model.Monday, tt.start, tt.end), 0)
			if err != nil {
				t.Fatalf("HasConflict 失败: %v", err)
			}
			if got != tt.want {
				t.Errorf("%s-%s: 期望 conflict=%v, 实际 %v", tt.start, tt.end, tt.want, got)
			}
		})
	}
}

func TestHasConflict_DifferentWeekdayOrClass(t *testing.T) {
	m := newMockRepos()
	m.timetable.seed(5, 7, model.Monday, "09:00", "10:00")
	ctx := context.Background()

	if hit, _ := HasConflict(ctx, m.timetable, AxisClass, candidate(5, 7, model.Tuesday, "09:00", "10:00"), 0); hit {
		t.Error("不同星期不应冲突")
	}
	if hit, _ := HasConflict(ctx, m.timetable, AxisClass, candidate(6, 8, model.Monday, "09:00", "10:00"), 0); hit {
		t.Error("不同班级不应在班级维度冲突")
	}
}

func TestHasConflict_Symmetry(t *testing.T) {
	pairs := []struct {
		a, b [2]string
	}{
		{[2]string{"09:00", "10:00"}, [2]string{"09:30", "10:30"}},
		{[2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}},
		{[2]string{"08:00", "12:00"}, [2]string{"09:00", "09:30"}},
		{[2]string{"07:00", "07:45"}, [2]string{"13:00", "14:00"}},
	}

	for _, p := range pairs {
		ctx := context.Background()

		mA := newMockRepos()
		mA.timetable.seed(5, 7, model.Monday, p.b[0], p.b[1])
		ab, err := HasConflict(ctx, mA.timetable, AxisClass, candidate(5, 7, model.Monday, p.a[0], p.a[1]), 0)
		if err != nil {
			t.Fatal(err)
		}

		mB := newMockRepos()
		mB.timetable.seed(5, 7, model.Monday, p.a[0], p.a[1])
		ba, err := HasConflict(ctx, mB.timetable, AxisClass, candidate(5, 7, model.Monday, p.b[0], p.b[1]), 0)
		if err != nil {
			t.Fatal(err)
		}

		if ab != ba {
			t.Errorf("%v vs %v: 结果不对称 (a→b=%v, b→a=%v)", p.a, p.b, ab, ba)
		}
	}
}

func TestHasConflict_ExcludeSelf(t *testing.T) {
	m := newMockRepos()
	stored := m.timetable.seed(5, 7, model.Monday, "09:00", "10:00")
	unchanged := candidate(5, 7, model.Monday, "09:00", "10:00")

	for _, axis := range []ConflictAxis{AxisClass, AxisTeacher} {
		hit, err := HasConflict(context.Background(), m.timetable, axis, unchanged, stored.TimetableID)
		if err != nil {
			t.Fatal(err)
		}
		if hit {
			t.Errorf("%s 维度：排除自身后不应冲突", axis)
		}
	}
}

func TestCheckConflicts_FirstMatchAndAxisOrder(t *testing.T) {
	m := newMockRepos()
	first := m.timetable.seed(5, 7, model.Monday, "09:00", "10:00")
	m.timetable.seed(5, 8, model.Monday, "09:30", "11:00")

	err := CheckConflicts(context.Background(), m.timetable, candidate(5, 7, model.Monday, "09:15", "10:15"), 0)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("期望 *ConflictError，实际: %v", err)
	}
	if ce.Axis != AxisClass {
		t.Errorf("两个维度均冲突时应先报告班级维度，实际 %s", ce.Axis)
	}
	if ce.ConflictWith != first.TimetableID {
		t.Errorf("期望命中首个冲突时段 %d，实际 %d", first.TimetableID, ce.ConflictWith)
	}
	if !errors.Is(err, ErrTimetableClassConflict) {
		t.Error("errors.Is 应匹配 ErrTimetableClassConflict")
	}
}

func TestCheckConflicts_DataAccessFailurePropagated(t *testing.T) {
	m := newMockRepos()
	dbErr := errors.New("connection reset")
	m.timetable.listErr = dbErr

	err := CheckConflicts(context.Background(), m.timetable, candidate(5, 7, model.Monday, "09:00", "10:00"), 0)
	if !errors.Is(err, dbErr) {
		t.Errorf("期望原样返回数据访问错误，实际: %v", err)
	}
}

// ════════════════════════════════════════════════════════════
// 示例场景
// ════════════════════════════════════════════════════════════

func TestTimetableService_Scenario1_ClassConflict(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.seed(5, 9, model.Monday, "09:00", "10:00")

	_, err := svc.Create(context.Background(), slotRequest(5, 7, "Monday", "09:30", "10:30"))
	if !errors.Is(err, ErrTimetableClassConflict) {
		t.Errorf("期望 ErrTimetableClassConflict，实际: %v", err)
	}
}

func TestTimetableService_Scenario2_BackToBack(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.seed(5, 9, model.Monday, "09:00", "10:00")

	resp, err := svc.Create(context.Background(), slotRequest(5, 7, "Monday", "10:00", "11:00"))
	if err != nil {
		t.Fatalf("紧邻时段应允许创建: %v", err)
	}
	if resp.StartTime != "10:00" || resp.EndTime != "11:00" {
		t.Errorf("时间不符: %s-%s", resp.StartTime, resp.EndTime)
	}
	if resp.Class.ID != 5 {
		t.Errorf("班级不符: %+v", resp.Class)
	}
}

func TestTimetableService_Scenario3_TeacherConflictAcrossClasses(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.seed(5, 7, model.Monday, "09:00", "10:00")

	_, err := svc.Create(context.Background(), slotRequest(8, 7, "Monday", "09:30", "10:00"))
	if !errors.Is(err, ErrTimetableTeacherConflict) {
		t.Errorf("期望 ErrTimetableTeacherConflict，实际: %v", err)
	}
	if errors.Is(err, ErrTimetableClassConflict) {
		t.Error("不同班级不应报告班级冲突")
	}
}

func TestTimetableService_Scenario4_ZeroLengthRejectedBeforeCheck(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.listErr = errors.New("冲突检查不应被调用")

	for _, tc := range [][2]string{{"09:00", "09:00"}, {"10:00", "09:00"}} {
		_, err := svc.Create(context.Background(), slotRequest(5, 7, "Monday", tc[0], tc[1]))
		if !errors.Is(err, ErrTimetableInvalidInterval) {
			t.Errorf("%s-%s: 期望 ErrTimetableInvalidInterval，实际: %v", tc[0], tc[1], err)
		}
	}
	if len(m.timetable.lockCalls) != 0 {
		t.Errorf("校验失败时不应进入加锁写入，实际调用 %d 次", len(m.timetable.lockCalls))
	}
}

func TestTimetableService_Scenario5_UpdateExcludesSelf(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.nextID = 11
	m.timetable.seed(5, 7, model.Monday, "09:00", "10:00")

	resp, err := svc.Update(context.Background(), 12, slotRequest(5, 7, "Monday", "09:00", "10:30"))
	if err != nil {
		t.Fatalf("更新自身时段不应冲突: %v", err)
	}
	if resp.ID != 12 || resp.EndTime != "10:30" {
		t.Errorf("更新结果不符: %+v", resp)
	}
	if resp.Version != 2 {
		t.Errorf("期望 version=2，实际 %d", resp.Version)
	}
}

// ════════════════════════════════════════════════════════════
// Create / Update / Delete
// ════════════════════════════════════════════════════════════

func TestTimetableService_Create_WeekdayCaseInsensitive(t *testing.T) {
	svc, m := setupTimetableFixture()

	resp, err := svc.Create(context.Background(), slotRequest(5, 7, "mONDAY", "08:00", "08:45"))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if resp.Weekday != "Monday" {
		t.Errorf("期望规范化为 Monday，实际 %s", resp.Weekday)
	}
	if len(m.timetable.lockCalls) != 1 || m.timetable.lockCalls[0][0] != model.Monday {
		t.Errorf("期望在 Monday 锁内写入，实际 %v", m.timetable.lockCalls)
	}
}

func TestTimetableService_Create_Validation(t *testing.T) {
	svc, _ := setupTimetableFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.TimetableRequest
		want error
	}{
		{"非法星期", slotRequest(5, 7, "Funday", "08:00", "09:00"), ErrTimetableInvalidWeekday},
		{"非法时间", slotRequest(5, 7, "Monday", "8am", "09:00"), ErrTimetableInvalidTime},
		{"班级不存在", slotRequest(404, 7, "Monday", "08:00", "09:00"), ErrClassNotFound},
		{"教师不存在", slotRequest(5, 404, "Monday", "08:00", "09:00"), ErrTeacherNotFound},
	}
	for _, tt := range tests {
		_, err := svc.Create(ctx, tt.req)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: 期望 %v，实际 %v", tt.name, tt.want, err)
		}
	}

	req := slotRequest(5, 7, "Monday", "08:00", "09:00")
	req.SubjectID = 404
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("科目不存在: 期望 ErrSubjectNotFound，实际 %v", err)
	}
}

func TestTimetableService_Update_ConflictWithOther(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.seed(5, 9, model.Monday, "10:00", "11:00")
	mine := m.timetable.seed(5, 7, model.Monday, "08:00", "09:00")

	_, err := svc.Update(context.Background(), mine.TimetableID, slotRequest(5, 7, "Monday", "08:30", "10:30"))
	if !errors.Is(err, ErrTimetableClassConflict) {
		t.Errorf("期望 ErrTimetableClassConflict，实际: %v", err)
	}
	stored, _ := m.timetable.GetByID(context.Background(), mine.TimetableID)
	if stored.EndTime.String() != "09:00" {
		t.Errorf("冲突时不应写入，实际 end=%s", stored.EndTime)
	}
}

func TestTimetableService_Update_MovesWeekdayLocksBoth(t *testing.T) {
	svc, m := setupTimetableFixture()
	mine := m.timetable.seed(5, 7, model.Monday, "08:00", "09:00")

	resp, err := svc.Update(context.Background(), mine.TimetableID, slotRequest(5, 7, "Friday", "08:00", "09:00"))
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if resp.Weekday != "Friday" {
		t.Errorf("期望 Friday，实际 %s", resp.Weekday)
	}
	locked := m.timetable.lockCalls[len(m.timetable.lockCalls)-1]
	if len(locked) != 2 || locked[0] != model.Monday || locked[1] != model.Friday {
		t.Errorf("期望同时锁定原星期与新星期，实际 %v", locked)
	}
}

func TestTimetableService_Update_StaleVersion(t *testing.T) {
	svc, m := setupTimetableFixture()
	mine := m.timetable.seed(5, 7, model.Monday, "08:00", "09:00")

	req := slotRequest(5, 7, "Monday", "08:00", "09:30")
	stale := 0
	req.Version = &stale
	_, err := svc.Update(context.Background(), mine.TimetableID, req)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}
}

func TestTimetableService_Update_NotFound(t *testing.T) {
	svc, _ := setupTimetableFixture()

	_, err := svc.Update(context.Background(), 999, slotRequest(5, 7, "Monday", "08:00", "09:00"))
	if !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("期望 ErrTimetableNotFound，实际: %v", err)
	}
}

func TestTimetableService_Delete(t *testing.T) {
	svc, m := setupTimetableFixture()
	mine := m.timetable.seed(5, 7, model.Monday, "08:00", "09:00")
	ctx := context.Background()

	if err := svc.Delete(ctx, mine.TimetableID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if err := svc.Delete(ctx, mine.TimetableID); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("重复删除应返回 ErrTimetableNotFound，实际: %v", err)
	}
}

func TestTimetableService_ListByWeekday(t *testing.T) {
	svc, m := setupTimetableFixture()
	m.timetable.seed(5, 7, model.Monday, "10:00", "11:00")
	m.timetable.seed(8, 9, model.Monday, "08:00", "09:00")
	m.timetable.seed(5, 7, model.Tuesday, "08:00", "09:00")
	ctx := context.Background()

	list, err := svc.ListByWeekday(ctx, "monday")
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 条，实际 %d", len(list))
	}
	if list[0].StartTime != "08:00" {
		t.Errorf("期望按开始时间排序，首条为 %s", list[0].StartTime)
	}

	if _, err := svc.ListByWeekday(ctx, "someday"); !errors.Is(err, ErrTimetableInvalidWeekday) {
		t.Errorf("期望 ErrTimetableInvalidWeekday，实际: %v", err)
	}
}
