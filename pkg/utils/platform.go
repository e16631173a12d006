//go:build !mobile

package utils

import "os"

// IsMobile 是否按触摸设备运行
// 桌面构建默认 false；ACG_MOBILE_EMULATE=1 时改用触摸引导和指针操控，便于在桌面调试
func IsMobile() bool {
	return os.Getenv("ACG_MOBILE_EMULATE") == "1"
}
