package globals

import (
	"github.com/minepkg/xsboot/internals/cmdlog"
	"github.com/minepkg/xsboot/internals/ownhttp"
)

var (
	// GlobalDir is the directory of the global config (usually ~/.config/xsboot)
	GlobalDir  string
	HTTPClient = ownhttp.New()
	Logger     = cmdlog.New()
)
