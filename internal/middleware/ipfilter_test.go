// SPDX-License-Identifier: MIT
package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func runFiltered(t *testing.T, blocklist []string, remote string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blocked, invalid := ParseBlocklist(blocklist)
	if len(invalid) > 0 {
		t.Fatalf("unexpected invalid entries: %v", invalid)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/themes", nil)
	c.Request.RemoteAddr = remote
	IPFilterMiddleware(blocked)(c)
	return w.Code
}

func TestIPFilterBlocksRange(t *testing.T) {
	if code := runFiltered(t, []string{"192.168.1.0/24"}, "192.168.1.100:1234"); code != 403 {
		t.Errorf("Expected 403 for blocked IP, got %d", code)
	}
}

func TestIPFilterAllowsOthers(t *testing.T) {
	if code := runFiltered(t, []string{"192.168.1.0/24"}, "10.0.0.1:1234"); code == 403 {
		t.Error("Expected allowed for non-blocked IP")
	}
}

func TestIPFilterBareAddresses(t *testing.T) {
	if code := runFiltered(t, []string{"10.0.0.9"}, "10.0.0.9:80"); code != 403 {
		t.Errorf("Expected 403 for blocked IPv4, got %d", code)
	}
	if code := runFiltered(t, []string{"2001:db8::1"}, "[2001:db8::1]:443"); code != 403 {
		t.Errorf("Expected 403 for blocked IPv6, got %d", code)
	}
	if code := runFiltered(t, []string{"10.0.0.9"}, "10.0.0.10:80"); code == 403 {
		t.Error("Neighbouring address should be allowed")
	}
}

func TestParseBlocklistReportsInvalid(t *testing.T) {
	nets, invalid := ParseBlocklist([]string{"10.0.0.0/8", "", "not-an-ip", "300.1.1.1/24"})
	if len(nets) != 1 {
		t.Errorf("Expected 1 network, got %d", len(nets))
	}
	if len(invalid) != 2 {
		t.Errorf("Expected 2 invalid entries, got %v", invalid)
	}
}
