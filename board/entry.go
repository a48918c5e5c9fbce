package board

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ByLCY/notecard/layout"
)

const (
	namesPerRow = 10
	topCount    = 5
)

// Store 是一家门店。
type Store struct {
	No   int    `json:"storeNo"`
	Name string `json:"storeName"`
}

// Entry 是当日出勤记录。
type Entry struct {
	WorkerName   string    `json:"workerName"`
	MentionCount int       `json:"mentionCount"`
	InsertCount  int       `json:"insertCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Score 为推荐排名使用的合计分：提及数 × 5 + 登记数。
func (e Entry) Score() int { return e.MentionCount*5 + e.InsertCount }

// Ranked 是带合计分的条目。
type Ranked struct {
	Entry
	Total int
}

// SortRecent 按 CreatedAt 倒序稳定排序（最新在前）。
func SortRecent(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}

// TopN 按合计分降序返回前 n 名；同分保持输入顺序。
func TopN(entries []Entry, n int) []Ranked {
	ranked := make([]Ranked, len(entries))
	for i, e := range entries {
		ranked[i] = Ranked{Entry: e, Total: e.Score()}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// NameRows 将姓名按每行 perRow 个以空格拼接。
func NameRows(entries []Entry, perRow int) []string {
	if perRow <= 0 {
		perRow = namesPerRow
	}
	var rows []string
	for start := 0; start < len(entries); start += perRow {
		end := min(start+perRow, len(entries))
		names := make([]string, 0, end-start)
		for _, e := range entries[start:end] {
			names = append(names, e.WorkerName)
		}
		rows = append(rows, strings.Join(names, " "))
	}
	return rows
}

// EntryLines 生成门店出勤卡片的行：标题、出勤人数、姓名列表与 TOP 5 推荐。
// 推荐列表显示原始合计分。
func EntryLines(store Store, entries []Entry) []layout.Line {
	lines := []layout.Line{
		title(store.Name + " 엔트리"),
		{Text: fmt.Sprintf("총 출근인원: %d명", len(entries)), FontSize: bodySize, GapBefore: 12},
	}
	if len(entries) == 0 {
		return append(lines, layout.Line{Text: "엔트리가 없습니다.", FontSize: bodySize, GapBefore: sectionGap})
	}

	lines = append(lines, heading("엔트리 목록"))
	for _, row := range NameRows(entries, namesPerRow) {
		lines = append(lines, item(row))
	}

	top := TopN(entries, topCount)
	lines = append(lines, heading("추천 아가씨 TOP 5"))
	for i, r := range top {
		lines = append(lines, item(fmt.Sprintf("%d. %s - 합계 %d", i+1, r.WorkerName, r.Total)))
	}
	return lines
}

// StoreListLines 生成门店列表卡片。
func StoreListLines(stores []Store) []layout.Line {
	lines := []layout.Line{title("가게 목록")}
	for _, s := range stores {
		lines = append(lines, item(fmt.Sprintf("%d - %s", s.No, s.Name)))
	}
	if len(stores) == 0 {
		lines = append(lines, item("등록된 가게가 없습니다."))
	}
	return lines
}

// FindStore 按编号查找门店，找不到时返回 ErrStoreNotFound。
func FindStore(stores []Store, no int) (Store, error) {
	for _, s := range stores {
		if s.No == no {
			return s, nil
		}
	}
	return Store{}, fmt.Errorf("%w: storeNo=%d", ErrStoreNotFound, no)
}
