package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowOriginFunc(t *testing.T) {
	allow := allowOriginFunc([]string{"dashboard.example.com", "*.widgets.example.com", "localhost:*"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://dashboard.example.com", true},
		{"http://dashboard.example.com", true},
		{"https://app.widgets.example.com", true},
		{"http://localhost:3000", true},
		{"http://localhost:5173", true},
		{"https://evil.example.com", false},
		{"https://dashboard.example.com.evil.net", false},
		{"https://example.org", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, allow(tt.origin), "origin %q", tt.origin)
	}
}

func TestAllowOriginFuncEmptyPatternsDenies(t *testing.T) {
	allow := allowOriginFunc(nil)
	assert.False(t, allow("https://dashboard.example.com"))
}

func TestOriginHost(t *testing.T) {
	tests := []struct {
		origin string
		want   string
	}{
		{"https://dashboard.example.com", "dashboard.example.com"},
		{"http://localhost:3000", "localhost:3000"},
		{"dashboard.example.com", "dashboard.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, originHost(tt.origin), "origin %q", tt.origin)
	}
}

func TestHostMatches(t *testing.T) {
	tests := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"dashboard.example.com", "dashboard.example.com", true},
		{"dashboard.example.com", "evil.example.com", false},
		{"*.example.com", "app.example.com", true},
		{"*.example.com", "example.org", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "remotehost:3000", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hostMatches(tt.pattern, tt.host), "%q vs %q", tt.pattern, tt.host)
	}
}
