package board

import "errors"

var (
	// ErrStoreNotFound 表示记录中缺少门店信息，调用方应在渲染前直接返回。
	ErrStoreNotFound = errors.New("board: store not found")
	// ErrRoomNotFound 表示缺少房间状态记录。
	ErrRoomNotFound = errors.New("board: room status not found")
	// ErrInvalidRecords 表示记录文件不是合法 JSON。
	ErrInvalidRecords = errors.New("board: invalid records")
)
