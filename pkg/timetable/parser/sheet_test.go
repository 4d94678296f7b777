package parser

import (
	"reflect"
	"testing"

	"github.com/ukaji3/timetable-go/pkg/timetable/models"
	"github.com/ukaji3/timetable-go/pkg/timetable/workbook"
)

// scheduleGrid is a two-group week fragment:
//
//	   A            B               C                             D
//	1  День         Время           ИС-21                         ИС-22
//	2  Понедельник  1 9.00-10.30    Математика Иванов И.И. 305    Физика
//	3                               Информатика Петров П.П. 210
//	4               2 10.40-12.10   История
//	5
//	6  Вторник      1 9.00-10.30    классный     час
func scheduleGrid() *workbook.Grid {
	return workbook.NewGrid("Расписание").
		Set("A1", "День").
		Set("B1", "Время").
		Set("C1", "ИС-21").
		Set("D1", "ИС-22").
		Set("A2", "Понедельник").
		Set("B2", "1 9.00-10.30").
		Set("C2", "Математика Иванов И.И. 305").
		Set("D2", "Физика").
		Set("C3", "Информатика Петров П.П. 210").
		Set("B4", "2 10.40-12.10").
		Set("C4", "История").
		Set("A6", "Вторник").
		Set("B6", "1 9.00-10.30").
		Set("C6", "классный     час")
}

func TestNewSheetLayout(t *testing.T) {
	s := NewSheet(scheduleGrid(), mustRules(t, Params{}))

	expected := models.Layout{
		DayColumn:        "A",
		TimeColumn:       "B",
		GroupNamesRow:    1,
		FirstGroupColumn: "C",
		LastGroupColumn:  "D",
		FirstScheduleRow: 2,
		LastScheduleRow:  6,
		ClassHourColumn:  "C",
	}
	if got := s.Layout(); got != expected {
		t.Errorf("Layout = %+v, expected %+v", got, expected)
	}
	if !s.Processed() || !s.Result().Processable {
		t.Error("Expected sheet to be processed")
	}
	if s.Result().Title != "Расписание" {
		t.Errorf("Title = %q", s.Result().Title)
	}
}

func TestScanGridIsIdempotent(t *testing.T) {
	grid := scheduleGrid()
	rules := mustRules(t, Params{})

	first := scanGrid(grid, rules)
	second := scanGrid(grid, rules)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical scans, got %+v and %+v", first, second)
	}
}

func TestNewSheetWithoutHeader(t *testing.T) {
	grid := workbook.NewGrid("Notes").
		Set("A1", "Примечания").
		Set("B2", "Математика")

	s := NewSheet(grid, mustRules(t, Params{}))
	if s.Result().Processable || s.Processed() {
		t.Error("Expected sheet without header to be unprocessable")
	}
	if s.Result().HasGroups() {
		t.Errorf("Expected no groups, got %d", len(s.Result().Groups))
	}
}

func TestNewSheetGroups(t *testing.T) {
	result := NewSheet(scheduleGrid(), mustRules(t, Params{})).Result()

	if len(result.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Name != "ИС-21" || result.Groups[1].Name != "ИС-22" {
		t.Errorf("Unexpected group order: %q, %q", result.Groups[0].Name, result.Groups[1].Name)
	}
	if g, ok := result.Group("D"); !ok || g.Name != "ИС-22" {
		t.Error("Expected group lookup by column")
	}
	if result.FirstGroup().Sheet() != result {
		t.Error("Expected group to reference its sheet")
	}
}

func TestPairWithTwoWeeks(t *testing.T) {
	result := NewSheet(scheduleGrid(), mustRules(t, Params{})).Result()
	group := result.Groups[0]

	if len(group.Pairs) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(group.Pairs))
	}

	pair := group.Pairs[0]
	if pair.Coordinate != "B2" || pair.Number != "1" || pair.Time != "9:00 - 10:30" || pair.Day != "понедельник" {
		t.Errorf("Unexpected pair %+v", pair)
	}
	if !pair.IsSplit() {
		t.Fatalf("Expected split pair, got %d lessons", len(pair.Lessons))
	}

	first, second := pair.Lessons[0], pair.Lessons[1]
	if first.WeekPosition != models.FirstWeek || first.Subject != "Математика" || first.Coordinate != "C2" {
		t.Errorf("Unexpected first lesson %+v", first)
	}
	if second.WeekPosition != models.SecondWeek || second.Subject != "Информатика" || second.Coordinate != "C3" {
		t.Errorf("Unexpected second lesson %+v", second)
	}
	if first.Pair() != pair || pair.Group() != group {
		t.Error("Expected back references to be set")
	}
}

func TestPairForBothWeeks(t *testing.T) {
	result := NewSheet(scheduleGrid(), mustRules(t, Params{})).Result()

	pair := result.Groups[0].Pairs[1]
	if pair.Coordinate != "B4" || pair.Number != "2" || pair.Time != "10:40 - 12:10" {
		t.Errorf("Unexpected pair %+v", pair)
	}
	if pair.Day != "понедельник" {
		t.Errorf("Expected day inherited from row 2, got %q", pair.Day)
	}
	if len(pair.Lessons) != 1 || pair.Lessons[0].WeekPosition != models.BothWeeks {
		t.Errorf("Expected one both-weeks lesson, got %+v", pair.Lessons)
	}
}

func TestEmptyLessonStillFormsPair(t *testing.T) {
	result := NewSheet(scheduleGrid(), mustRules(t, Params{})).Result()
	group := result.Groups[1]

	var coordinates []string
	for _, p := range group.Pairs {
		coordinates = append(coordinates, p.Coordinate)
	}
	if !reflect.DeepEqual(coordinates, []string{"B2", "B4", "B6"}) {
		t.Fatalf("Unexpected pairs %v", coordinates)
	}

	blank := group.Pairs[1].Lessons[0]
	if !blank.IsEmpty() || blank.WeekPosition != models.BothWeeks {
		t.Errorf("Expected empty both-weeks lesson, got %+v", blank)
	}
}

func TestClassHourPair(t *testing.T) {
	grid := workbook.NewGrid("Sheet1").
		Set("A1", "День").
		Set("B1", "Время").
		Set("C1", "ИС-21").
		Set("A2", "Понедельник").
		Set("C2", "классный     час").
		Set("B3", "1 9.00-10.30").
		Set("C3", "Физика")

	group := NewSheet(grid, mustRules(t, Params{})).Result().Groups[0]
	if len(group.Pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(group.Pairs))
	}

	pair := group.Pairs[0]
	if pair.Time != "" || pair.Number != "" {
		t.Errorf("Expected class hour without time, got %q %q", pair.Number, pair.Time)
	}
	lesson := pair.Lessons[0]
	if !lesson.IsClassHour || lesson.Subject != "Классный час" || lesson.WeekPosition != models.BothWeeks {
		t.Errorf("Unexpected class hour lesson %+v", lesson)
	}
}

func TestMergedLessonCoversBothWeeks(t *testing.T) {
	grid := workbook.NewGrid("Sheet1").
		Set("A1", "День").
		Set("B1", "Время").
		Set("C1", "ИС-21").
		Set("A2", "Среда").
		Set("B2", "1 9.00-10.30").
		Set("C2", "Математика").
		Merge("B2", "B3").
		Merge("C2", "C3")

	pairs := NewSheet(grid, mustRules(t, Params{})).Result().Groups[0].Pairs
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	if len(pairs[0].Lessons) != 1 || pairs[0].Lessons[0].WeekPosition != models.BothWeeks {
		t.Errorf("Expected one both-weeks lesson, got %+v", pairs[0].Lessons)
	}
}

func TestEmptySecondWeekSlot(t *testing.T) {
	grid := workbook.NewGrid("Sheet1").
		Set("A1", "День").
		Set("B1", "Время").
		Set("C1", "ИС-21").
		Set("A2", "Среда").
		Set("B2", "1 9.00-10.30").
		Set("C2", "Математика").
		Merge("B2", "B3")

	pair := NewSheet(grid, mustRules(t, Params{})).Result().Groups[0].Pairs[0]
	if !pair.IsSplit() {
		t.Fatalf("Expected split pair, got %d lessons", len(pair.Lessons))
	}
	if second := pair.Lessons[1]; !second.IsEmpty() || second.WeekPosition != models.SecondWeek {
		t.Errorf("Expected empty second-week lesson, got %+v", second)
	}
}

func TestMergedLessonIgnoresEmptySlotBelow(t *testing.T) {
	grid := workbook.NewGrid("Sheet1").
		Set("A1", "День").
		Set("B1", "Время").
		Set("C1", "ИС-21").
		Set("D1", "ИС-22").
		Set("A2", "Среда").
		Set("B2", "1 9.00-10.30").
		Set("C2", "Лекция").
		Merge("B2", "B3").
		Merge("C2", "D2")

	pair := NewSheet(grid, mustRules(t, Params{})).Result().Groups[0].Pairs[0]
	if len(pair.Lessons) != 1 || pair.Lessons[0].WeekPosition != models.BothWeeks {
		t.Errorf("Expected one both-weeks lesson, got %+v", pair.Lessons)
	}
}

func TestCellInvisibility(t *testing.T) {
	grid := workbook.NewGrid("Sheet1").
		Set("C2", "Математика").
		Merge("C2", "C3").
		Merge("C4", "C5").
		Merge("C6", "D6")

	s := NewSheet(grid, mustRules(t, Params{}))

	tests := []struct {
		coordinate string
		expected   bool
	}{
		{"C2", false},
		{"C3", true},
		{"C4", false},
		{"C5", true},
		{"C6", false},
		{"D6", false},
		{"E9", false},
	}

	for _, tt := range tests {
		if got := s.Cell(tt.coordinate).Invisible; got != tt.expected {
			t.Errorf("Cell(%q).Invisible = %v, expected %v", tt.coordinate, got, tt.expected)
		}
	}
}

func TestInvisibilityCacheIsPerSheet(t *testing.T) {
	merged := workbook.NewGrid("A").Merge("C2", "C3")
	plain := workbook.NewGrid("B").Set("C4", "x")
	rules := mustRules(t, Params{})

	if !NewSheet(merged, rules).Cell("C3").Invisible {
		t.Fatal("Expected C3 invisible on merged sheet")
	}
	if NewSheet(plain, rules).Cell("C3").Invisible {
		t.Error("Expected C3 visible on a sheet without merges")
	}
}

func TestSkippedCoordinates(t *testing.T) {
	grid := scheduleGrid().
		Set("C4", "#перенос").
		Set("E1", "#служебная")
	rules := mustRules(t, Params{Vocabulary: Vocabulary{SkipPrefixes: []string{"#"}}})

	s := NewSheet(grid, rules)
	if !reflect.DeepEqual(s.SkippedCoordinates(), []string{"C4", "E1"}) {
		t.Errorf("Unexpected skip list %v", s.SkippedCoordinates())
	}
	if s.Layout().DayColumn != "A" || s.Layout().TimeColumn != "B" {
		t.Errorf("Expected header detection unaffected, got %+v", s.Layout())
	}

	groupC, _ := s.Result().Group("C")
	if _, ok := groupC.PairAt("B4"); ok {
		t.Error("Expected skipped row to be excluded from group C")
	}
	groupD, _ := s.Result().Group("D")
	if _, ok := groupD.PairAt("B4"); !ok {
		t.Error("Expected row 4 to remain in group D")
	}
}

func TestGroupFilter(t *testing.T) {
	tests := []struct {
		filter   string
		expected []string
	}{
		{"ИС-22", []string{"ИС-22"}},
		{" ИС-21 ", []string{"ИС-21"}},
		{"ИС-99", nil},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			result := NewSheet(scheduleGrid(), mustRules(t, Params{GroupFilter: tt.filter})).Result()

			var names []string
			for _, g := range result.Groups {
				names = append(names, g.Name)
			}
			if !reflect.DeepEqual(names, tt.expected) {
				t.Errorf("Groups = %v, expected %v", names, tt.expected)
			}
		})
	}
}

func TestAlternateCampus(t *testing.T) {
	grid := scheduleGrid().Set("D4", "Химия Сидоров С.С. ул. Менделеева, 4")

	result := NewSheet(grid, mustRules(t, Params{})).Result()
	if !result.HasAlternateCampus {
		t.Fatal("Expected sheet campus flag")
	}

	groupD, _ := result.Group("D")
	pair, ok := groupD.PairAt("B4")
	if !ok {
		t.Fatal("Expected pair at B4")
	}
	if !pair.Lessons[0].IsAlternateCampus {
		t.Error("Expected campus lesson to be flagged")
	}
	if groupD.Pairs[0].Lessons[0].IsAlternateCampus {
		t.Error("Expected other lessons not to be flagged")
	}
}

func TestForcedAlternateCampus(t *testing.T) {
	result := NewSheet(scheduleGrid(), mustRules(t, Params{ForceAlternateCampus: true})).Result()
	if !result.HasAlternateCampus {
		t.Fatal("Expected forced campus flag")
	}

	group := result.Groups[0]
	if !group.Pairs[0].Lessons[0].IsAlternateCampus {
		t.Error("Expected lesson to be flagged")
	}
	if group.Pairs[2].Lessons[0].IsAlternateCampus {
		t.Error("Expected class hour not to be flagged")
	}
}

func TestDayFromPreviousColumn(t *testing.T) {
	grid := workbook.NewGrid("Sheet1").
		Set("A2", "ПЯТНИЦА").
		Set("B1", "День").
		Set("B2", "Ignored").
		Set("C1", "Время").
		Set("D1", "ИС-21").
		Set("C2", "1 9.00-10.30").
		Set("D2", "Физика").
		Set("C4", "2 10.40-12.10").
		Set("D4", "Химия")

	group := NewSheet(grid, mustRules(t, Params{})).Result().Groups[0]
	if len(group.Pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(group.Pairs))
	}
	for _, p := range group.Pairs {
		if p.Day != "пятница" {
			t.Errorf("Pair %s: expected day from column A, got %q", p.Coordinate, p.Day)
		}
	}
}

func TestSplitTimeLabel(t *testing.T) {
	tests := []struct {
		input  string
		number string
		time   string
	}{
		{"1 9:00-10:30", "1", "9:00 - 10:30"},
		{"1   9.00 -10.30", "1", "9:00 - 10:30"},
		{"9.00-10.30", "", "9:00 - 10:30"},
		{"9.00 - 10.30", "", "9:00 - 10:30"},
		{"II 12.00–13.30", "II", "12:00 - 13:30"},
		{"", "", ""},
	}

	for _, tt := range tests {
		number, time := splitTimeLabel(tt.input)
		if number != tt.number || time != tt.time {
			t.Errorf("splitTimeLabel(%q) = (%q, %q), expected (%q, %q)", tt.input, number, time, tt.number, tt.time)
		}
	}
}
