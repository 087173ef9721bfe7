//go:build unix

package sys

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until any of the given files is ready to be read or
// timeout. A negative timeout means no timeout. It returns a boolean array
// indicating which files are ready to be read and any possible error.
func WaitForRead(timeout time.Duration, files ...*os.File) (ready []bool, err error) {
	var fdSet unix.FdSet
	maxfd := 0
	for _, file := range files {
		fd := int(file.Fd())
		if maxfd < fd {
			maxfd = fd
		}
		fdSet.Set(fd)
	}
	var ptimeval *unix.Timeval
	if timeout >= 0 {
		timeval := unix.NsecToTimeval(int64(timeout))
		ptimeval = &timeval
	}
	_, err = unix.Select(maxfd+1, &fdSet, nil, nil, ptimeval)
	ready = make([]bool, len(files))
	for i, file := range files {
		ready[i] = fdSet.IsSet(int(file.Fd()))
	}
	return ready, err
}
