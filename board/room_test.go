package board

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRoomInfoDisplay(t *testing.T) {
	t.Parallel()
	cases := map[string]string{"999": "여유", "999.0": "여유", "": "N/A", "3": "3", "만실": "만실"}
	for in, want := range cases {
		if got := (Room{RoomInfo: in}).RoomInfoDisplay(); got != want {
			t.Fatalf("RoomInfoDisplay(%q) = %q, want %q", in, got, want)
		}
	}
	if got := (Room{}).WaitInfoDisplay(); got != "N/A" {
		t.Fatalf("missing wait info should be N/A, got %q", got)
	}
}

func TestDetailRows(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "strict json keeps document order",
			raw:  `{"zeta":1,"alpha":{"rooms":[2,"VIP"],"note":null},"open":true}`,
			want: []string{"zeta: 1", "alpha.rooms.0: 2", "alpha.rooms.1: VIP", "alpha.note: ", "open: true"},
		},
		{
			name: "repaired loose json",
			raw:  "{room: 'A',\n wait: 3}",
			want: []string{"room: A", "wait: 3"},
		},
		{
			name: "unparseable text is cleaned",
			raw:  "{\"룸\" 3개\n대기 없음}",
			want: []string{"룸 3개", "대기 없음"},
		},
		{
			name: "top level array",
			raw:  `["a","b"]`,
			want: []string{"0: a", "1: b"},
		},
		{name: "empty", raw: "  ", want: nil},
		{name: "null", raw: "null", want: nil},
		{name: "false", raw: "false", want: nil},
		{name: "zero", raw: "0", want: nil},
		{name: "empty string", raw: `""`, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DetailRows(tt.raw)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Fatalf("DetailRows(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatKST(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 3, 5, 5, 7, 9, 0, time.UTC) // 14:07:09 KST
	if got := FormatKST(ts); got != "2024. 3. 5. 오후 2:07:09" {
		t.Fatalf("FormatKST = %q", got)
	}
	midnight := time.Date(2024, 12, 31, 15, 0, 0, 0, time.UTC) // 00:00 KST
	if got := FormatKST(midnight); got != "2025. 1. 1. 오전 12:00:00" {
		t.Fatalf("FormatKST(midnight) = %q", got)
	}
	if FormatKST(time.Time{}) != "N/A" {
		t.Fatalf("zero time should be N/A")
	}
}

func TestRoomLines(t *testing.T) {
	t.Parallel()
	room := Room{StoreName: "역삼", RoomInfo: "999", Detail: `{"a":1}`, UpdatedAt: time.Date(2024, 3, 5, 5, 7, 9, 0, time.UTC)}
	lines := RoomLines(room)
	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	want := []string{"역삼 룸현황", "룸 정보: 여유", "웨이팅 정보: N/A", "상세 정보", "a: 1", "업데이트: 2024. 3. 5. 오후 2:07:09"}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Fatalf("RoomLines = %q, want %q", texts, want)
	}

	lines = RoomLines(Room{StoreName: "x"})
	if lines[4].Text != "상세 정보 없음" {
		t.Fatalf("missing detail placeholder, got %q", lines[4].Text)
	}
}

func TestDecodeRoom(t *testing.T) {
	t.Parallel()
	room, err := DecodeRoom([]byte(`{"storeNo":7,"storeName":"선릉","roomInfo":999,"waitInfo":null,"roomDetail":{"vip":2},"updatedAt":"2024-03-05 14:07:09"}`))
	if err != nil {
		t.Fatalf("DecodeRoom: %v", err)
	}
	if room.StoreNo != 7 || room.RoomInfoDisplay() != "여유" || room.WaitInfoDisplay() != "N/A" {
		t.Fatalf("unexpected room: %+v", room)
	}
	if rows := DetailRows(room.Detail); len(rows) != 1 || rows[0] != "vip: 2" {
		t.Fatalf("embedded detail not preserved: %q", rows)
	}
	if FormatKST(room.UpdatedAt) != "2024. 3. 5. 오후 2:07:09" {
		t.Fatalf("DATETIME should be read as KST, got %s", FormatKST(room.UpdatedAt))
	}

	if _, err := DecodeRoom([]byte(`{}`)); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
	if _, err := DecodeRoom([]byte(`{`)); !errors.Is(err, ErrInvalidRecords) {
		t.Fatalf("expected ErrInvalidRecords, got %v", err)
	}
}

func TestDecodeEntryBoard(t *testing.T) {
	t.Parallel()
	raw := `{
	  "store": {"storeNo": 1, "storeName": "강남"},
	  "entries": [
	    {"workerName": "A", "mentionCount": 1, "insertCount": 0, "createdAt": "2024-03-05T10:00:00+09:00"},
	    {"workerName": "B", "mentionCount": 0, "insertCount": 3, "createdAt": "2024-03-05T11:00:00+09:00"}
	  ]
	}`
	b, err := DecodeEntryBoard([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeEntryBoard: %v", err)
	}
	if b.Store.Name != "강남" || len(b.Entries) != 2 || b.Entries[0].WorkerName != "B" {
		t.Fatalf("unexpected board: %+v", b)
	}
	if _, err := DecodeEntryBoard([]byte(`{"entries": []}`)); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
	if _, err := DecodeEntryBoard([]byte(`{"store":{"storeName":"x"},"entries":[{"createdAt":"yesterday"}]}`)); !errors.Is(err, ErrInvalidRecords) {
		t.Fatalf("expected ErrInvalidRecords for bad timestamp, got %v", err)
	}

	stores, err := DecodeStores([]byte(`{"stores":[{"storeNo":1,"storeName":"A"},{"storeNo":2,"storeName":"B"}]}`))
	if err != nil || len(stores) != 2 || stores[1].Name != "B" {
		t.Fatalf("DecodeStores = %+v, %v", stores, err)
	}
}
