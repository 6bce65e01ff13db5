package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/packforge/cmd/packforge/commands"
	"git.home.luguber.info/inful/packforge/internal/errors"
	"git.home.luguber.info/inful/packforge/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("packforge"),
		kong.Description("Content-addressed asset pack builder"),
		kong.Vars{"version": version.String()},
	)
	err := ctx.Run(&commands.Global{}, cli)
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
