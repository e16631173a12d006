//go:build !mobile

package mobile

// Dummy 桌面构建下的空实现
// 绑定入口只在 -tags mobile 时编译，这里让 ./... 在桌面端也能通过
func Dummy() {}
