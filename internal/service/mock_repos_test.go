package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
	pkgerrors "parent-teacher-bridge/backend/pkg/errors"
	"parent-teacher-bridge/backend/pkg/mailer"
)

// ── 聚合 ──

type mockRepos struct {
	admin       *mockAdminRepo
	teacher     *mockTeacherRepo
	parent      *mockParentRepo
	class       *mockClassRepo
	subject     *mockSubjectRepo
	student     *mockStudentRepo
	timetable   *mockTimetableRepo
	attendance  *mockAttendanceRepo
	behaviour   *mockBehaviourRepo
	performance *mockPerformanceRepo
	event       *mockEventRepo
	message     *mockMessageRepo
}

func newMockRepos() *mockRepos {
	m := &mockRepos{
		admin:       &mockAdminRepo{items: make(map[int64]*model.Admin)},
		teacher:     &mockTeacherRepo{items: make(map[int64]*model.Teacher)},
		class:       &mockClassRepo{items: make(map[int64]*model.SchoolClass)},
		subject:     &mockSubjectRepo{items: make(map[int64]*model.Subject)},
		student:     &mockStudentRepo{items: make(map[int64]*model.Student)},
		timetable:   &mockTimetableRepo{items: make(map[int64]*model.Timetable)},
		attendance:  &mockAttendanceRepo{items: make(map[int64]*model.Attendance)},
		behaviour:   &mockBehaviourRepo{items: make(map[int64]*model.Behaviour)},
		performance: &mockPerformanceRepo{items: make(map[int64]*model.Performance)},
		event:       &mockEventRepo{items: make(map[int64]*model.Event)},
		message:     &mockMessageRepo{items: make(map[int64]*model.Message)},
	}
	m.parent = &mockParentRepo{items: make(map[int64]*model.Parent), students: m.student}
	return m
}

func (m *mockRepos) repository() *repository.Repository {
	return &repository.Repository{
		Admin:       m.admin,
		Teacher:     m.teacher,
		Parent:      m.parent,
		Class:       m.class,
		Subject:     m.subject,
		Student:     m.student,
		Timetable:   m.timetable,
		Attendance:  m.attendance,
		Behaviour:   m.behaviour,
		Performance: m.performance,
		Event:       m.event,
		Message:     m.message,
	}
}

func testLogger() *zap.Logger { return zap.NewNop() }

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func boolPtr(v bool) *bool { return &v }

func mustDate(s string) datatypes.Date {
	d, err := parseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	items  map[int64]*model.Admin
	nextID int64
}

func (m *mockAdminRepo) Create(_ context.Context, a *model.Admin) error {
	m.nextID++
	a.AdminID = m.nextID
	a.CreatedAt = time.Now()
	m.items[a.AdminID] = a
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id int64) (*model.Admin, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.items {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) List(_ context.Context) ([]model.Admin, error) {
	var result []model.Admin
	for _, id := range sortedKeys(m.items) {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockAdminRepo) Update(_ context.Context, a *model.Admin) error {
	m.items[a.AdminID] = a
	return nil
}

func (m *mockAdminRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	items  map[int64]*model.Teacher
	nextID int64
}

func (m *mockTeacherRepo) add(name string) *model.Teacher {
	t := &model.Teacher{Name: name, Email: strings.ToLower(name) + "@school.test", IsActive: true}
	_ = m.Create(context.Background(), t)
	return t
}

func (m *mockTeacherRepo) Create(_ context.Context, t *model.Teacher) error {
	for _, existing := range m.items {
		if strings.EqualFold(existing.Email, t.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextID++
	t.TeacherID = m.nextID
	m.items[t.TeacherID] = t
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	if t, ok := m.items[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, t := range m.items {
		if strings.EqualFold(t.Email, email) {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, activeOnly bool) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, id := range sortedKeys(m.items) {
		if activeOnly && !m.items[id].IsActive {
			continue
		}
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockTeacherRepo) Search(_ context.Context, term string) ([]model.Teacher, error) {
	term = strings.ToLower(term)
	var result []model.Teacher
	for _, id := range sortedKeys(m.items) {
		t := m.items[id]
		if strings.Contains(strings.ToLower(t.Name), term) || strings.Contains(strings.ToLower(t.Email), term) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, t *model.Teacher) error {
	m.items[t.TeacherID] = t
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock ParentRepository ──

type mockParentRepo struct {
	items    map[int64]*model.Parent
	links    []model.StudentParent
	students *mockStudentRepo
	nextID   int64
}

func (m *mockParentRepo) Create(_ context.Context, p *model.Parent) error {
	m.nextID++
	p.ParentID = m.nextID
	p.CreatedAt = time.Now()
	m.items[p.ParentID] = p
	return nil
}

func (m *mockParentRepo) CreateWithLink(ctx context.Context, p *model.Parent, link *model.StudentParent) error {
	if err := m.Create(ctx, p); err != nil {
		return err
	}
	if link != nil {
		link.ParentID = p.ParentID
		m.links = append(m.links, *link)
	}
	return nil
}

func (m *mockParentRepo) link(parentID, studentID int64) {
	m.links = append(m.links, model.StudentParent{ParentID: parentID, StudentID: studentID, IsPrimaryGuardian: true})
}

func (m *mockParentRepo) GetByID(_ context.Context, id int64) (*model.Parent, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.Links = nil
	for _, l := range m.links {
		if l.ParentID == id {
			l.Student = m.students.items[l.StudentID]
			p.Links = append(p.Links, l)
		}
	}
	return p, nil
}

func (m *mockParentRepo) GetByEmail(_ context.Context, email string) (*model.Parent, error) {
	for _, p := range m.items {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) List(_ context.Context) ([]model.Parent, error) {
	var result []model.Parent
	for _, id := range sortedKeys(m.items) {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockParentRepo) Update(_ context.Context, p *model.Parent) error {
	m.items[p.ParentID] = p
	return nil
}

func (m *mockParentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockParentRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Parent, error) {
	var result []model.Parent
	for _, l := range m.links {
		if l.StudentID == studentID {
			if p, ok := m.items[l.ParentID]; ok {
				result = append(result, *p)
			}
		}
	}
	return result, nil
}

func (m *mockParentRepo) LinkedStudents(_ context.Context, parentID int64) ([]model.Student, error) {
	var result []model.Student
	for _, l := range m.links {
		if l.ParentID == parentID {
			if st, ok := m.students.items[l.StudentID]; ok {
				result = append(result, *st)
			}
		}
	}
	return result, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	items        map[int64]*model.SchoolClass
	nextID       int64
	studentCount int64
	deleteErr    error
}

func (m *mockClassRepo) add(name string) *model.SchoolClass {
	c := &model.SchoolClass{Name: name}
	_ = m.Create(context.Background(), c)
	return c
}

func (m *mockClassRepo) Create(_ context.Context, c *model.SchoolClass) error {
	m.nextID++
	c.ClassID = m.nextID
	m.items[c.ClassID] = c
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id int64) (*model.SchoolClass, error) {
	if c, ok := m.items[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.SchoolClass, error) {
	var result []model.SchoolClass
	for _, id := range sortedKeys(m.items) {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockClassRepo) Update(_ context.Context, c *model.SchoolClass) error {
	m.items[c.ClassID] = c
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockClassRepo) CountStudents(_ context.Context, _ int64) (int64, error) {
	return m.studentCount, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	items  map[int64]*model.Subject
	nextID int64
}

func (m *mockSubjectRepo) add(name, code string) *model.Subject {
	s := &model.Subject{Name: name, Code: code}
	_ = m.Create(context.Background(), s)
	return s
}

func (m *mockSubjectRepo) Create(_ context.Context, s *model.Subject) error {
	m.nextID++
	s.SubjectID = m.nextID
	m.items[s.SubjectID] = s
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	if s, ok := m.items[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, s := range m.items {
		if strings.EqualFold(s.Code, code) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range sortedKeys(m.items) {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockSubjectRepo) Search(_ context.Context, term string) ([]model.Subject, error) {
	term = strings.ToLower(term)
	var result []model.Subject
	for _, id := range sortedKeys(m.items) {
		s := m.items[id]
		if strings.Contains(strings.ToLower(s.Name), term) || strings.Contains(strings.ToLower(s.Code), term) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, s *model.Subject) error {
	m.items[s.SubjectID] = s
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	items  map[int64]*model.Student
	nextID int64
}

func (m *mockStudentRepo) add(name, enrollment string, classID *int64) *model.Student {
	s := &model.Student{Name: name, EnrollmentNo: enrollment, ClassID: classID}
	_ = m.Create(context.Background(), s)
	return s
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	m.nextID++
	s.StudentID = m.nextID
	m.items[s.StudentID] = s
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if s, ok := m.items[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEnrollmentNo(_ context.Context, enrollmentNo string) (*model.Student, error) {
	want := strings.TrimSpace(enrollmentNo)
	for _, s := range m.items {
		if strings.EqualFold(strings.TrimSpace(s.EnrollmentNo), want) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, id := range sortedKeys(m.items) {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockStudentRepo) ListByClass(_ context.Context, classID int64) ([]model.Student, error) {
	var result []model.Student
	for _, id := range sortedKeys(m.items) {
		s := m.items[id]
		if s.ClassID != nil && *s.ClassID == classID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Search(_ context.Context, term string) ([]model.Student, error) {
	term = strings.ToLower(term)
	var result []model.Student
	for _, id := range sortedKeys(m.items) {
		s := m.items[id]
		if strings.Contains(strings.ToLower(s.Name), term) || strings.Contains(strings.ToLower(s.EnrollmentNo), term) {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	m.items[s.StudentID] = s
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	items     map[int64]*model.Timetable
	nextID    int64
	listErr   error // 注入冲突查询失败
	lockCalls [][]model.Weekday
}

// seed 直接写入一条已存在的时段
func (m *mockTimetableRepo) seed(classID, teacherID int64, day model.Weekday, start, end string) *model.Timetable {
	s, _ := model.ParseClock(start)
	e, _ := model.ParseClock(end)
	slot := &model.Timetable{ClassID: classID, SubjectID: 1, TeacherID: teacherID, Weekday: day, StartTime: s, EndTime: e}
	_ = m.Create(context.Background(), slot)
	return slot
}

func (m *mockTimetableRepo) Create(_ context.Context, slot *model.Timetable) error {
	m.nextID++
	slot.TimetableID = m.nextID
	slot.Version = 1
	copied := *slot
	m.items[slot.TimetableID] = &copied
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id int64) (*model.Timetable, error) {
	if s, ok := m.items[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) List(_ context.Context, filter repository.TimetableFilter) ([]model.Timetable, error) {
	var result []model.Timetable
	for _, id := range sortedKeys(m.items) {
		s := m.items[id]
		if filter.ClassID > 0 && s.ClassID != filter.ClassID {
			continue
		}
		if filter.TeacherID > 0 && s.TeacherID != filter.TeacherID {
			continue
		}
		if filter.Weekday != "" && s.Weekday != filter.Weekday {
			continue
		}
		result = append(result, *s)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Weekday.Index() != result[j].Weekday.Index() {
			return result[i].Weekday.Index() < result[j].Weekday.Index()
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockTimetableRepo) ListByClassAndWeekday(_ context.Context, classID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error) {
	return m.onAxis(func(s *model.Timetable) bool { return s.ClassID == classID }, weekday, excludeID)
}

func (m *mockTimetableRepo) ListByTeacherAndWeekday(_ context.Context, teacherID int64, weekday model.Weekday, excludeID int64) ([]model.Timetable, error) {
	return m.onAxis(func(s *model.Timetable) bool { return s.TeacherID == teacherID }, weekday, excludeID)
}

func (m *mockTimetableRepo) onAxis(match func(*model.Timetable) bool, weekday model.Weekday, excludeID int64) ([]model.Timetable, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Timetable
	for _, id := range sortedKeys(m.items) {
		s := m.items[id]
		if !match(s) || !strings.EqualFold(string(s.Weekday), string(weekday)) {
			continue
		}
		if excludeID > 0 && s.TimetableID == excludeID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockTimetableRepo) Update(_ context.Context, slot *model.Timetable) error {
	stored, ok := m.items[slot.TimetableID]
	if !ok || stored.Version != slot.Version {
		return pkgerrors.ErrOptimisticLock
	}
	slot.Version++
	copied := *slot
	m.items[slot.TimetableID] = &copied
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockTimetableRepo) WithWeekdayLock(_ context.Context, weekdays []model.Weekday, fn func(repository.TimetableRepository) error) error {
	m.lockCalls = append(m.lockCalls, weekdays)
	return fn(m)
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	items  map[int64]*model.Attendance
	nextID int64
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	m.nextID++
	a.AttendanceID = m.nextID
	m.items[a.AttendanceID] = a
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id int64) (*model.Attendance, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) GetByStudentAndDate(_ context.Context, studentID int64, date datatypes.Date) (*model.Attendance, error) {
	for _, a := range m.items {
		if a.StudentID == studentID && dtoDate(a.Date) == dtoDate(date) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, id := range sortedKeys(m.items) {
		if m.items[id].StudentID == studentID {
			result = append(result, *m.items[id])
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByClassAndDate(_ context.Context, classID int64, date datatypes.Date) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, id := range sortedKeys(m.items) {
		a := m.items[id]
		if a.ClassID == classID && dtoDate(a.Date) == dtoDate(date) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, a *model.Attendance) error {
	m.items[a.AttendanceID] = a
	return nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock BehaviourRepository ──

type mockBehaviourRepo struct {
	items  map[int64]*model.Behaviour
	nextID int64
}

func (m *mockBehaviourRepo) Create(_ context.Context, b *model.Behaviour) error {
	m.nextID++
	b.BehaviourID = m.nextID
	m.items[b.BehaviourID] = b
	return nil
}

func (m *mockBehaviourRepo) GetByID(_ context.Context, id int64) (*model.Behaviour, error) {
	if b, ok := m.items[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBehaviourRepo) ListByStudent(_ context.Context, studentID, teacherID int64) ([]model.Behaviour, error) {
	var result []model.Behaviour
	for _, id := range sortedKeys(m.items) {
		b := m.items[id]
		if b.StudentID != studentID || (teacherID > 0 && b.TeacherID != teacherID) {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockBehaviourRepo) Update(_ context.Context, b *model.Behaviour) error {
	m.items[b.BehaviourID] = b
	return nil
}

func (m *mockBehaviourRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock PerformanceRepository ──

type mockPerformanceRepo struct {
	items  map[int64]*model.Performance
	nextID int64
}

func (m *mockPerformanceRepo) Create(_ context.Context, p *model.Performance) error {
	m.nextID++
	p.PerformanceID = m.nextID
	m.items[p.PerformanceID] = p
	return nil
}

func (m *mockPerformanceRepo) GetByID(_ context.Context, id int64) (*model.Performance, error) {
	if p, ok := m.items[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPerformanceRepo) ListByStudent(_ context.Context, studentID int64) ([]model.Performance, error) {
	var result []model.Performance
	for _, id := range sortedKeys(m.items) {
		if m.items[id].StudentID == studentID {
			result = append(result, *m.items[id])
		}
	}
	return result, nil
}

func (m *mockPerformanceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	items  map[int64]*model.Event
	nextID int64
}

func (m *mockEventRepo) Create(_ context.Context, e *model.Event) error {
	m.nextID++
	e.EventID = m.nextID
	m.items[e.EventID] = e
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id int64) (*model.Event, error) {
	if e, ok := m.items[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, activeOnly bool) ([]model.Event, error) {
	var result []model.Event
	for _, id := range sortedKeys(m.items) {
		if activeOnly && !m.items[id].IsActive {
			continue
		}
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, e *model.Event) error {
	m.items[e.EventID] = e
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	items     map[int64]*model.Message
	nextID    int64
	markCalls int
}

func (m *mockMessageRepo) Create(_ context.Context, msg *model.Message) error {
	m.nextID++
	msg.MessageID = m.nextID
	copied := *msg
	m.items[msg.MessageID] = &copied
	return nil
}

func (m *mockMessageRepo) GetByID(_ context.Context, id int64) (*model.Message, error) {
	if msg, ok := m.items[id]; ok {
		copied := *msg
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMessageRepo) Inbox(_ context.Context, receiverID int64, receiverRole string) ([]model.Message, error) {
	var result []model.Message
	for _, id := range sortedKeys(m.items) {
		msg := m.items[id]
		if msg.ReceiverID == receiverID && msg.ReceiverRole == receiverRole {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (m *mockMessageRepo) Conversation(_ context.Context, aID int64, aRole string, bID int64, bRole string) ([]model.Message, error) {
	var result []model.Message
	for _, id := range sortedKeys(m.items) {
		msg := m.items[id]
		ab := msg.SenderID == aID && msg.SenderRole == aRole && msg.ReceiverID == bID && msg.ReceiverRole == bRole
		ba := msg.SenderID == bID && msg.SenderRole == bRole && msg.ReceiverID == aID && msg.ReceiverRole == aRole
		if ab || ba {
			result = append(result, *msg)
		}
	}
	return result, nil
}

func (m *mockMessageRepo) MarkRead(_ context.Context, id int64, at time.Time) error {
	m.markCalls++
	if msg, ok := m.items[id]; ok && msg.ReadAt == nil {
		msg.ReadAt = &at
	}
	return nil
}

// ── Mock 邮件发送 ──

type mockSender struct {
	sent []mailer.Message
	err  error
}

func (m *mockSender) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// ── Mock Token 黑名单 ──

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 辅助 ──

func sortedKeys[T any](items map[int64]T) []int64 {
	keys := make([]int64, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func dtoDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
