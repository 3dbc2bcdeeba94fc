package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    Weekday
		wantErr bool
	}{
		{"Monday", Monday, false},
		{"monday", Monday, false},
		{"  SUNDAY ", Sunday, false},
		{"wednesDay", Wednesday, false},
		{"Mon", "", true},
		{"Funday", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekday(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWeekday(%q) = %q, 期望 %q", tt.in, got, tt.want)
		}
	}
}

func TestWeekdayIndex(t *testing.T) {
	if Monday.Index() != 0 || Sunday.Index() != 6 {
		t.Error("周一应为 0，周日应为 6")
	}
	if Weekday("monday").Index() != -1 {
		t.Error("非规范写法应返回 -1")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    ClockTime
		wantErr bool
	}{
		{"09:00", NewClockTime(9, 0), false},
		{"23:59", NewClockTime(23, 59), false},
		{"00:00", 0, false},
		{"10:30:00", NewClockTime(10, 30), false},
		{"10:30:15", 0, true},
		{"9:00", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err=%v, wantErr=%v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestClockTime_ScanValue(t *testing.T) {
	var c ClockTime
	for _, src := range []interface{}{"09:15:00", []byte("09:15:00.000000"), time.Date(0, 1, 1, 9, 15, 0, 0, time.UTC)} {
		if err := c.Scan(src); err != nil {
			t.Fatalf("Scan(%v) 失败: %v", src, err)
		}
		if c != NewClockTime(9, 15) {
			t.Errorf("Scan(%v) = %v, 期望 09:15", src, c)
		}
	}
	if err := c.Scan(42); err == nil {
		t.Error("不支持的类型应报错")
	}

	v, _ := NewClockTime(14, 5).Value()
	if v != "14:05:00" {
		t.Errorf("Value = %v, 期望 14:05:00", v)
	}
}

func TestClockTime_JSON(t *testing.T) {
	type slot struct {
		Start ClockTime `json:"start"`
	}
	b, err := json.Marshal(slot{Start: NewClockTime(8, 30)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"start":"08:30"}` {
		t.Errorf("Marshal = %s", b)
	}

	var s slot
	if err := json.Unmarshal([]byte(`{"start":"25:00"}`), &s); err == nil {
		t.Error("非法时间应报错")
	}
}

func TestTimetableOverlaps(t *testing.T) {
	slot := func(sh, sm, eh, em int) *Timetable {
		return &Timetable{StartTime: NewClockTime(sh, sm), EndTime: NewClockTime(eh, em)}
	}
	tests := []struct {
		name string
		a, b *Timetable
		want bool
	}{
		{"部分重叠", slot(9, 0, 10, 0), slot(9, 30, 10, 30), true},
		{"包含", slot(9, 0, 12, 0), slot(10, 0, 11, 0), true},
		{"相同", slot(9, 0, 10, 0), slot(9, 0, 10, 0), true},
		{"首尾相接", slot(9, 0, 10, 0), slot(10, 0, 11, 0), false},
		{"不相交", slot(8, 0, 9, 0), slot(13, 0, 14, 0), false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%s: a.Overlaps(b) = %v, 期望 %v", tt.name, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%s: 对称性失败 b.Overlaps(a) = %v", tt.name, got)
		}
	}
}
