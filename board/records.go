package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// 记录文件中可接受的时间格式（数据库 DATETIME 无时区时按 KST 解释）。
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// EntryBoard 是出勤卡片的输入记录。
type EntryBoard struct {
	Store   Store
	Entries []Entry
}

// DecodeEntryBoard 解析 {"store": {...}, "entries": [...]} 形式的记录。
// 缺少 store 时返回 ErrStoreNotFound；entries 按 createdAt 倒序排列。
func DecodeEntryBoard(data []byte) (EntryBoard, error) {
	if !gjson.ValidBytes(data) {
		return EntryBoard{}, ErrInvalidRecords
	}
	root := gjson.ParseBytes(data)
	store := root.Get("store")
	if !store.IsObject() || store.Get("storeName").String() == "" {
		return EntryBoard{}, ErrStoreNotFound
	}
	board := EntryBoard{Store: decodeStore(store)}
	var err error
	root.Get("entries").ForEach(func(_, v gjson.Result) bool {
		var e Entry
		e, err = decodeEntry(v)
		if err != nil {
			return false
		}
		board.Entries = append(board.Entries, e)
		return true
	})
	if err != nil {
		return EntryBoard{}, err
	}
	SortRecent(board.Entries)
	return board, nil
}

// DecodeStores 解析门店数组。
func DecodeStores(data []byte) ([]Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidRecords
	}
	root := gjson.ParseBytes(data)
	if stores := root.Get("stores"); stores.IsArray() {
		root = stores
	}
	var out []Store
	root.ForEach(func(_, v gjson.Result) bool {
		out = append(out, decodeStore(v))
		return true
	})
	return out, nil
}

// DecodeRoom 解析单条房间状态记录；roomInfo 可为数字或字符串，roomDetail 可为字符串或内嵌 JSON。
func DecodeRoom(data []byte) (Room, error) {
	if !gjson.ValidBytes(data) {
		return Room{}, ErrInvalidRecords
	}
	v := gjson.ParseBytes(data)
	if !v.IsObject() || !v.Get("storeName").Exists() {
		return Room{}, ErrRoomNotFound
	}
	room := Room{
		StoreNo:   int(v.Get("storeNo").Int()),
		StoreName: v.Get("storeName").String(),
		RoomInfo:  scalar(v.Get("roomInfo")),
		WaitInfo:  scalar(v.Get("waitInfo")),
	}
	if d := v.Get("roomDetail"); d.Type == gjson.String {
		room.Detail = d.String()
	} else if d.Exists() && d.Type != gjson.Null {
		room.Detail = d.Raw
	}
	if ts := v.Get("updatedAt"); ts.Exists() && ts.Type != gjson.Null {
		t, err := parseTime(ts.String())
		if err != nil {
			return Room{}, err
		}
		room.UpdatedAt = t
	}
	return room, nil
}

func decodeStore(v gjson.Result) Store {
	return Store{No: int(v.Get("storeNo").Int()), Name: v.Get("storeName").String()}
}

func decodeEntry(v gjson.Result) (Entry, error) {
	e := Entry{
		WorkerName:   v.Get("workerName").String(),
		MentionCount: int(v.Get("mentionCount").Int()),
		InsertCount:  int(v.Get("insertCount").Int()),
	}
	if ts := v.Get("createdAt"); ts.Exists() && ts.Type != gjson.Null {
		t, err := parseTime(ts.String())
		if err != nil {
			return Entry{}, err
		}
		e.CreatedAt = t
	}
	return e, nil
}

func scalar(v gjson.Result) string {
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, KST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: 无法解析时间 %q", ErrInvalidRecords, s)
}
