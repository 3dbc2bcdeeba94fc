package service

import (
	"context"
	"errors"
	"testing"

	"parent-teacher-bridge/backend/internal/dto"
	"parent-teacher-bridge/backend/internal/model"
)

// ── Admin ──

func TestAdminService_CreateDuplicateEmail(t *testing.T) {
	m := newMockRepos()
	svc := NewAdminService(m.repository(), testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateAdminRequest{Name: "管理员", Email: "Admin@School.test", Password: "password123"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if created.Email != "admin@school.test" {
		t.Errorf("邮箱应归一化，实际 %s", created.Email)
	}
	if m.admin.items[created.ID].Password == "password123" {
		t.Error("密码不应明文存储")
	}

	_, err = svc.Create(ctx, &dto.CreateAdminRequest{Name: "管理员2", Email: "admin@school.test", Password: "password123"})
	if !errors.Is(err, ErrAdminEmailExists) {
		t.Errorf("期望 ErrAdminEmailExists，实际: %v", err)
	}
}

func TestAdminService_DeleteSelf(t *testing.T) {
	m := newMockRepos()
	svc := NewAdminService(m.repository(), testLogger())
	_ = m.admin.Create(context.Background(), &model.Admin{Name: "管理员", Email: "a@school.test"})

	if err := svc.Delete(context.Background(), 1, 1); !errors.Is(err, ErrAdminSelfDelete) {
		t.Errorf("期望 ErrAdminSelfDelete，实际: %v", err)
	}
	if err := svc.Delete(context.Background(), 7, 1); !errors.Is(err, ErrAdminNotFound) {
		t.Errorf("期望 ErrAdminNotFound，实际: %v", err)
	}
}

// ── Teacher ──

func TestTeacherService_SearchAndActive(t *testing.T) {
	m := newMockRepos()
	svc := NewTeacherService(m.repository(), testLogger())
	ctx := context.Background()
	m.teacher.add("Alice")
	bob := m.teacher.add("Bob")
	bob.IsActive = false

	found, err := svc.Search(ctx, "ali")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Name != "Alice" {
		t.Errorf("搜索结果不符: %+v", found)
	}
	if _, err := svc.Search(ctx, "  "); !errors.Is(err, ErrSearchTermRequired) {
		t.Errorf("期望 ErrSearchTermRequired，实际: %v", err)
	}

	active, _ := svc.ListActive(ctx)
	if len(active) != 1 {
		t.Errorf("期望 1 位在职教师，实际 %d", len(active))
	}
}

func TestTeacherService_UpdateEmailTaken(t *testing.T) {
	m := newMockRepos()
	svc := NewTeacherService(m.repository(), testLogger())
	m.teacher.add("Alice")
	bob := m.teacher.add("Bob")

	_, err := svc.Update(context.Background(), bob.TeacherID, &dto.UpdateTeacherRequest{Email: strPtr("ALICE@school.test")})
	if !errors.Is(err, ErrTeacherEmailExists) {
		t.Errorf("期望 ErrTeacherEmailExists，实际: %v", err)
	}

	resp, err := svc.Update(context.Background(), bob.TeacherID, &dto.UpdateTeacherRequest{Email: strPtr("bob@school.test")})
	if err != nil {
		t.Errorf("保留自身邮箱应成功，实际: %v", err)
	} else if resp.Email != "bob@school.test" {
		t.Errorf("邮箱不符: %s", resp.Email)
	}
}

// ── Parent ──

func TestParentService_CreateWithStudentLink(t *testing.T) {
	m := newMockRepos()
	svc := NewParentService(m.repository(), testLogger())
	student := m.student.add("小明", "STU-001", nil)

	resp, err := svc.Create(context.Background(), &dto.CreateParentRequest{
		Name:              "王女士",
		Email:             "wang@school.test",
		Password:          "password123",
		StudentID:         int64Ptr(student.StudentID),
		IsPrimaryGuardian: true,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if len(resp.Students) != 1 || resp.Students[0].EnrollmentNo != "STU-001" {
		t.Errorf("应返回关联学生，实际 %+v", resp.Students)
	}

	_, err = svc.Create(context.Background(), &dto.CreateParentRequest{
		Name: "李先生", Email: "li@school.test", Password: "password123", StudentID: int64Ptr(99),
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestParentService_Dashboard(t *testing.T) {
	m := newMockRepos()
	svc := NewParentService(m.repository(), testLogger())
	ctx := context.Background()

	class := m.class.add("三年级")
	m.teacher.add("Alice")
	student := m.student.add("小明", "STU-001", int64Ptr(class.ClassID))
	parent := &model.Parent{Name: "王女士", Email: "wang@school.test"}
	_ = m.parent.Create(ctx, parent)
	m.parent.link(parent.ParentID, student.StudentID)

	m.timetable.seed(class.ClassID, 1, model.Tuesday, "09:00", "10:00")
	m.timetable.seed(class.ClassID, 1, model.Monday, "09:00", "10:00")
	m.timetable.seed(class.ClassID+1, 1, model.Monday, "11:00", "12:00")

	got, err := svc.Student(ctx, parent.ParentID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != student.StudentID {
		t.Errorf("学生不符: %d", got.ID)
	}

	slots, err := svc.Timetable(ctx, parent.ParentID)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 || slots[0].Weekday != "Monday" {
		t.Errorf("应仅返回子女班级课表并按星期排序，实际 %+v", slots)
	}
}

func TestParentService_NoLinkedStudent(t *testing.T) {
	m := newMockRepos()
	svc := NewParentService(m.repository(), testLogger())
	_ = m.parent.Create(context.Background(), &model.Parent{Name: "王女士", Email: "wang@school.test"})

	if _, err := svc.Attendance(context.Background(), 1); !errors.Is(err, ErrParentNoStudent) {
		t.Errorf("期望 ErrParentNoStudent，实际: %v", err)
	}
}

func TestParentService_TimetableUnclassedStudent(t *testing.T) {
	m := newMockRepos()
	svc := NewParentService(m.repository(), testLogger())
	student := m.student.add("小明", "STU-001", nil)
	_ = m.parent.Create(context.Background(), &model.Parent{Name: "王女士", Email: "wang@school.test"})
	m.parent.link(1, student.StudentID)

	slots, err := svc.Timetable(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if slots == nil || len(slots) != 0 {
		t.Errorf("未分班学生应返回空列表，实际 %v", slots)
	}
}
