package layout

import (
	"encoding/json"
	"io"
	"os"
)

// MarshalDebug 返回带缩进的布局 JSON。
func MarshalDebug(l *Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。path 为 "-" 时写到 w。
func WriteDebugJSON(l *Layout, path string, w io.Writer) error {
	if l == nil {
		return nil
	}
	data, err := MarshalDebug(l)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = w.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
