package fs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestVirtualPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		segments []string
	}{
		{
			name:     "simple path",
			input:    "test.txt",
			expected: "/test.txt",
			segments: []string{"test.txt"},
		},
		{
			name:     "nested path",
			input:    "dir/test.txt",
			expected: "/dir/test.txt",
			segments: []string{"dir", "test.txt"},
		},
		{
			name:     "already absolute path",
			input:    "/dir/test.txt",
			expected: "/dir/test.txt",
			segments: []string{"dir", "test.txt"},
		},
		{
			name:     "duplicate and trailing slashes",
			input:    "/a//b/",
			expected: "/a/b",
			segments: []string{"a", "b"},
		},
		{
			name:     "root",
			input:    "/",
			expected: "/",
		},
		{
			name:     "empty",
			input:    "",
			expected: "/",
		},
		{
			name:     "dot dot segments are kept",
			input:    "dir/../test.txt",
			expected: "/dir/../test.txt",
			segments: []string{"dir", "..", "test.txt"},
		},
		{
			name:     "leading dot segment dropped",
			input:    "./docs/a.txt",
			expected: "/docs/a.txt",
			segments: []string{"docs", "a.txt"},
		},
		{
			name:     "inner dot segment dropped",
			input:    "docs/./a.txt",
			expected: "/docs/a.txt",
			segments: []string{"docs", "a.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewVirtualPath(tt.input)
			if vp.String() != tt.expected {
				t.Errorf("Expected path %q, got %q", tt.expected, vp.String())
			}
			if diff := cmp.Diff(tt.segments, vp.Segments()); diff != "" {
				t.Errorf("Segments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVirtualPathHelpers(t *testing.T) {
	root := NewVirtualPath("/")
	if !root.IsRoot() {
		t.Error("Expected / to be root")
	}
	if root.Base() != "/" {
		t.Errorf("Expected root base %q, got %q", "/", root.Base())
	}

	docs := root.Child("docs")
	readme := docs.Child("readme.txt")
	if readme.String() != "/docs/readme.txt" {
		t.Errorf("Expected child path %q, got %q", "/docs/readme.txt", readme.String())
	}
	if docs.String() != "/docs" {
		t.Errorf("Child must not modify its parent, got %q", docs.String())
	}
	if readme.Base() != "readme.txt" {
		t.Errorf("Expected base %q, got %q", "readme.txt", readme.Base())
	}
	if got := readme.Prefix(1).String(); got != "/docs" {
		t.Errorf("Expected prefix %q, got %q", "/docs", got)
	}

	// Appending to a prefix must not overwrite the original path.
	other := readme.Prefix(1).Child("other")
	if readme.String() != "/docs/readme.txt" || other.String() != "/docs/other" {
		t.Errorf("Prefix shares storage: %q, %q", readme.String(), other.String())
	}
}

func TestValidSegment(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"docs", true},
		{"readme.txt", true},
		{".hidden", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
	}

	for _, tt := range tests {
		if got := validSegment(tt.name); got != tt.valid {
			t.Errorf("validSegment(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}
