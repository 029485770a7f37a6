//go:build unix

package macperm

import "golang.org/x/sys/unix"

// canOpenAny reports whether any path opens read-only. TCC denies the open(2)
// itself, so a successful descriptor is proof of access.
func canOpenAny(paths []string) bool {
	for _, p := range paths {
		fd, err := unix.Open(p, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		_ = unix.Close(fd)
		return true
	}
	return false
}
