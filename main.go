package main

import (
	"net/http"

	"github.com/minepkg/xsboot/cmd"
	"github.com/minepkg/xsboot/internals/ownhttp"
)

// set by goreleaser
var (
	version string
	commit  string
)

func main() {
	// replace default http client
	http.DefaultClient = ownhttp.New()

	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
