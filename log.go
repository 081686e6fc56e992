package binstream

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var pkgLogger atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	pkgLogger.Store(&nop)
}

// SetLogger installs the logger used for diagnostics. Rejected input and
// cancelled operations are logged at debug level, backpatches at trace level.
// The default logger discards everything.
func SetLogger(l zerolog.Logger) {
	l = l.With().Str("module", "binstream").Logger()
	pkgLogger.Store(&l)
}

func logger() *zerolog.Logger {
	return pkgLogger.Load()
}
