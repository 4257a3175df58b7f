package utils

import "testing"

func TestIsNetworkDrive(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"UNC forward slashes", "//server/share/videos", true},
		{"UNC backslashes", `\\server\share\videos`, true},
		{"Linux mnt", "/mnt/nas/videos", true},
		{"Linux media", "/media/user/disk", true},
		{"macOS volume", "/Volumes/Share/videos", true},
		{"Path containing 'nfs'", "/srv/nfs-share/videos", true},
		{"Path containing 'SMB'", "/shares/SMB/videos", true},
		{"Regular path without indicators", "/home/user/documents/videos", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNetworkDrive(tt.path)
			if result != tt.expected {
				t.Errorf("IsNetworkDrive(%q) = %v, expected %v", tt.path, result, tt.expected)
			}
		})
	}
}
