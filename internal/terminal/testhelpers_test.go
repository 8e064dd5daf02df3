package terminal

import (
	"bytes"
	"os"
)

// fakeFile has a file descriptor without being a real file.
type fakeFile struct {
	bytes.Buffer
}

func (*fakeFile) Fd() uintptr { return 99 }

// newTestDetector ignores the process environment. Only variables listed in
// env are set; tty decides what every file descriptor looks like.
func newTestDetector(env map[string]string, tty bool) *Detector {
	return &Detector{
		lookupEnv: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		isTerminal: func(int) bool { return tty },
	}
}

var _ fdWriter = (*os.File)(nil)
