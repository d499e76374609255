//go:build windows

package fs

import "golang.org/x/sys/windows"

// IsHidden checks if a file is hidden on this platform (Windows). Dot files
// count as hidden too, as they would on Unix.
func IsHidden(fullPath string, name string) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	target := fullPath
	if target == "" {
		target = name
	}
	ptr, err := windows.UTF16PtrFromString(target)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
