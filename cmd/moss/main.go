package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/moss/cmd/moss/commands"
	ferrors "git.home.luguber.info/inful/moss/internal/foundation/errors"
	"git.home.luguber.info/inful/moss/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("moss"),
		kong.Description("Turn a folder of markdown into a small static website."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// configuration failures surface through AfterApply as classified errors
		if ferrors.IsClassified(err) {
			ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
		}
		parser.FatalIfErrorf(err)
	}

	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	err = kctx.Run(global, cli)
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
