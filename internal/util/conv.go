package util

import (
	"strconv"
)

// MustParseInt64 将字符串转换为int64，解析失败时返回 0
func MustParseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
