package utils

import (
	"path/filepath"
	"strings"
)

// Common network mount prefixes on different platforms
var networkPrefixes = []string{
	"/mnt/",     // Linux NFS/SMB mounts
	"/media/",   // Linux removable/network media
	"/Volumes/", // macOS network volumes
}

// Network filesystem indicators in a path
var networkIndicators = []string{
	"nfs", "cifs", "smb", "webdav", "ftp", "sftp",
}

// IsNetworkDrive guesses from its path whether a folder is on a network mount. Many
// workers decoding from such a mount mostly contend for bandwidth.
func IsNetworkDrive(path string) bool {
	// Windows UNC paths, checked before converting to an absolute path
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, "\\\\") {
		return true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.ToSlash(absPath)

	for _, prefix := range networkPrefixes {
		if strings.HasPrefix(absPath, prefix) {
			return true
		}
	}

	lowerPath := strings.ToLower(absPath)
	for _, indicator := range networkIndicators {
		if strings.Contains(lowerPath, indicator) {
			return true
		}
	}
	return false
}
