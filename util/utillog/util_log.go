package utillog

import "github.com/sirupsen/logrus"

// Log hooks used by library packages, replace them to redirect or silence the logs.
var (
	DebugLog func(pat string, args ...any) = func(pat string, args ...any) {
		logrus.Debugf(pat, args...)
	}
	ErrorLog func(pat string, args ...any) = func(pat string, args ...any) {
		logrus.Errorf(pat, args...)
	}
)
