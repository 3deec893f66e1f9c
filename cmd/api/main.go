package main

import (
	"context"

	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Version kong.VersionFlag
		Serve   ServeCmd   `cmd:"" default:"1" help:"Start the HTTP API server."`
		Migrate MigrateCmd `cmd:"" help:"Manage the database schema."`
	}
)

// Globals are shared by every command.
type Globals struct {
	Version string
}

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("users-manager"),
		kong.Description("Organization and user management backend."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&Globals{Version: version})
	cmd.FatalIfErrorf(err)
}
