package service

import (
	"context"
	"errors"
	"testing"

	"parent-teacher-bridge/backend/internal/dto"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A"}, {90, "A"}, {89.99, "B"}, {75, "B"}, {74.5, "C"},
		{60, "C"}, {59.99, "D"}, {40, "D"}, {39.99, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := GradeFor(tt.pct); got != tt.want {
			t.Errorf("GradeFor(%v) = %s，期望 %s", tt.pct, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		marks, max, want float64
	}{
		{45, 50, 90},
		{2, 3, 66.67},
		{1, 3, 33.33},
		{0, 80, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.marks, tt.max); got != tt.want {
			t.Errorf("Percentage(%v, %v) = %v，期望 %v", tt.marks, tt.max, got, tt.want)
		}
	}
}

func setupTestPerformanceService() (PerformanceService, *mockRepos) {
	m := newMockRepos()
	m.teacher.add("Alice")
	m.subject.add("数学", "MATH")
	m.student.add("小明", "STU-001", nil)
	return NewPerformanceService(m.repository(), testLogger()), m
}

func performanceRequest(marks, max float64) *dto.CreatePerformanceRequest {
	return &dto.CreatePerformanceRequest{
		StudentID:     1,
		SubjectID:     1,
		ExamType:      "期中",
		MarksObtained: &marks,
		MaxMarks:      max,
		ExamDate:      strPtr("2025-04-20"),
	}
}

func TestPerformanceService_Create_DerivesGrade(t *testing.T) {
	svc, _ := setupTestPerformanceService()

	resp, err := svc.Create(context.Background(), 1, performanceRequest(68, 80))
	if err != nil {
		t.Fatalf("录入失败: %v", err)
	}
	if resp.Percentage != 85 {
		t.Errorf("期望 percentage=85，实际 %v", resp.Percentage)
	}
	if resp.Grade != "B" {
		t.Errorf("期望 grade=B，实际 %s", resp.Grade)
	}
	if resp.Subject == nil || resp.Subject.Code != "MATH" {
		t.Errorf("响应应包含科目，实际 %+v", resp.Subject)
	}
	if resp.ExamDate == nil || *resp.ExamDate != "2025-04-20" {
		t.Errorf("exam_date 不符: %v", resp.ExamDate)
	}
}

func TestPerformanceService_Create_ExplicitGrade(t *testing.T) {
	svc, _ := setupTestPerformanceService()
	req := performanceRequest(30, 100)
	req.Grade = strPtr(" e ")

	resp, err := svc.Create(context.Background(), 1, req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Grade != "E" {
		t.Errorf("显式等级应优先，期望 E，实际 %s", resp.Grade)
	}
}

func TestPerformanceService_Create_Validation(t *testing.T) {
	svc, _ := setupTestPerformanceService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, performanceRequest(101, 100)); !errors.Is(err, ErrPerformanceMarksExceeded) {
		t.Errorf("期望 ErrPerformanceMarksExceeded，实际: %v", err)
	}

	req := performanceRequest(10, 100)
	req.SubjectID = 9
	if _, err := svc.Create(ctx, 1, req); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}

	req = performanceRequest(10, 100)
	req.StudentID = 9
	if _, err := svc.Create(ctx, 1, req); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}
