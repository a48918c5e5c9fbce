package config

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxConfigSize 限制配置文件大小（1MB）。
var MaxConfigSize = 1 << 20

var (
	ErrEmptyConfig    = errors.New("config: empty input")
	ErrConfigTooLarge = errors.New("config: input exceeds maximum size")
)

// decodeStrict 解析 YAML 并拒绝未知字段。
func decodeStrict(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyConfig
	}
	if len(data) > MaxConfigSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrConfigTooLarge, len(data), MaxConfigSize)
	}
	return yaml.UnmarshalWithOptions(data, v, yaml.Strict())
}

// isNullNode 判断 `name:` 这类空节点。
func isNullNode(data []byte) bool {
	s := bytes.TrimSpace(data)
	return len(s) == 0 || string(s) == "null" || string(s) == "~"
}

// Marshal 将配置写回 YAML，用于 `--print-config`。
func Marshal(f *File) ([]byte, error) {
	out, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return out, nil
}
