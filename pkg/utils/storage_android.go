//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在打开 gdata 之前创建 Android 上的存档目录
//
// gdata 在 Android 上写入 /data/data/{package}/，但不会创建子目录。
func EnsureStorageDir() error {
	dir, err := androidDataDir()
	if err != nil {
		return err
	}

	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", saves, err)
	}

	probe := filepath.Join(saves, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", saves, err)
	}
	return os.Remove(probe)
}

// androidDataDir 根据进程名（即包名）推出应用数据目录
func androidDataDir() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}

	// cmdline 以 NUL 分隔参数，第一个参数是包名
	pkg, _, _ := bytes.Cut(cmdline, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return "", fmt.Errorf("failed to detect Android package: empty /proc/self/cmdline")
	}
	return filepath.Join("/data/data", string(pkg)), nil
}
