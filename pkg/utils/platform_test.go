//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("ACG_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}

	t.Setenv("ACG_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should honor ACG_MOBILE_EMULATE=1")
	}
}
