//go:build mobile

package utils

// IsMobile 移动端编译时总是返回 true，启用触摸操控
func IsMobile() bool {
	return true
}
