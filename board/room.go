package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ByLCY/notecard/layout"
)

const (
	roomInfoSpare = 999
	notAvailable  = "N/A"
)

// KST 是看板展示时间使用的时区（UTC+9，无夏令时）。
var KST = time.FixedZone("KST", 9*60*60)

var (
	newlinePattern = regexp.MustCompile(`\r?\n|\r`)
	bareKeyPattern = regexp.MustCompile(`([{\s,])(\w+)\s*:`)
	cleanPattern   = regexp.MustCompile(`[{}"]`)
)

// Room 是一家门店的房间状态。RoomInfo 与 WaitInfo 保持原始文本；空串表示缺失。
type Room struct {
	StoreNo   int
	StoreName string
	RoomInfo  string
	WaitInfo  string
	Detail    string
	UpdatedAt time.Time
}

// RoomInfoDisplay 返回房间信息的展示文本：999 表示“여유”，缺失为 N/A。
func (r Room) RoomInfoDisplay() string {
	v := strings.TrimSpace(r.RoomInfo)
	if v == "" {
		return notAvailable
	}
	if n, err := strconv.ParseFloat(v, 64); err == nil && n == roomInfoSpare {
		return "여유"
	}
	return r.RoomInfo
}

// WaitInfoDisplay 返回等待信息，缺失为 N/A。
func (r Room) WaitInfoDisplay() string {
	if r.WaitInfo == "" {
		return notAvailable
	}
	return r.WaitInfo
}

// Detail 是解析后的详情：JSON 成功时 Value 有效，否则保留原文 Raw。
type Detail struct {
	Value gjson.Result
	Raw   string
	OK    bool
}

// ParseDetail 先按严格 JSON 解析；失败时修复常见的宽松写法（换行、未加引号的键、单引号）再试；
// 仍失败则保留原文。
func ParseDetail(raw string) Detail {
	if strings.TrimSpace(raw) == "" {
		return Detail{}
	}
	for _, candidate := range []string{raw, RepairJSON(raw)} {
		if !gjson.Valid(candidate) {
			continue
		}
		v := gjson.Parse(candidate)
		if falsy(v) {
			return Detail{}
		}
		return Detail{Value: v, OK: true}
	}
	return Detail{Raw: raw}
}

// falsy 报告 null、false、0 与空串，这些值视为没有详情。
func falsy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return v.Num == 0
	case gjson.String:
		return v.Str == ""
	}
	return false
}

// RepairJSON 将换行替换为空格、为裸键加双引号，并把单引号换成双引号。
func RepairJSON(raw string) string {
	fixed := newlinePattern.ReplaceAllString(raw, " ")
	fixed = bareKeyPattern.ReplaceAllString(fixed, `$1"$2":`)
	return strings.ReplaceAll(fixed, "'", `"`)
}

// FlattenDetail 按文档顺序将嵌套对象/数组展开为 "a.b.0: 值" 行；null 输出为空值。
func FlattenDetail(v gjson.Result) []string {
	var rows []string
	flatten(v, "", &rows)
	return rows
}

func flatten(v gjson.Result, prefix string, rows *[]string) {
	switch {
	case v.IsArray():
		i := 0
		v.ForEach(func(_, child gjson.Result) bool {
			flatten(child, joinKey(prefix, strconv.Itoa(i)), rows)
			i++
			return true
		})
	case v.IsObject():
		v.ForEach(func(key, child gjson.Result) bool {
			flatten(child, joinKey(prefix, key.String()), rows)
			return true
		})
	case v.Type == gjson.Null || !v.Exists():
		*rows = append(*rows, prefix+": ")
	default:
		*rows = append(*rows, prefix+": "+v.String())
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// DetailRows 返回详情展示行：JSON 展开结果，或去掉 { } " 的原文各行；无内容时为 nil。
func DetailRows(raw string) []string {
	d := ParseDetail(raw)
	switch {
	case d.OK:
		return FlattenDetail(d.Value)
	case d.Raw != "":
		cleaned := cleanPattern.ReplaceAllString(d.Raw, "")
		var rows []string
		for _, line := range strings.Split(newlinePattern.ReplaceAllString(cleaned, "\n"), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				rows = append(rows, line)
			}
		}
		return rows
	default:
		return nil
	}
}

// FormatKST 以韩语区域习惯格式化时间，例如 "2024. 3. 5. 오후 2:07:09"。
func FormatKST(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	t = t.In(KST)
	period := "오전"
	if t.Hour() >= 12 {
		period = "오후"
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), period, hour, t.Minute(), t.Second())
}

// RoomLines 生成房间状态卡片的行。
func RoomLines(room Room) []layout.Line {
	lines := []layout.Line{
		title(room.StoreName + " 룸현황"),
		{Text: "룸 정보: " + room.RoomInfoDisplay(), FontSize: bodySize, GapBefore: 12},
		item("웨이팅 정보: " + room.WaitInfoDisplay()),
		heading("상세 정보"),
	}
	rows := DetailRows(room.Detail)
	if len(rows) == 0 {
		lines = append(lines, item("상세 정보 없음"))
	}
	for _, row := range rows {
		lines = append(lines, layout.Line{Text: row, FontSize: detailSize, GapBefore: 4})
	}
	return append(lines, layout.Line{
		Text:      "업데이트: " + FormatKST(room.UpdatedAt),
		FontSize:  footerSize,
		GapBefore: sectionGap,
		Fill:      footerFill,
	})
}
