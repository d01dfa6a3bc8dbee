// Package db registers the interactive clients for the database and cache
// services.
package db

import (
	"fmt"
	"strings"

	"devkit/cli/devctl/internal/cmdregistry"
	"devkit/cli/devctl/internal/environ"
)

func Register(r *cmdregistry.Registry) {
	r.Register("psql", "Connect to PostgreSQL", handlePsql)
	r.Register("redis-cli", "Connect to Redis", handleRedisCLI)
}

func handlePsql(ctx *cmdregistry.Context) error {
	vars, err := environ.LoadFile(ctx.Path(ctx.Config.Env.File))
	if err != nil {
		return fmt.Errorf("psql: %w", err)
	}
	user := strings.TrimSpace(vars["POSTGRES_USER"])
	if user == "" {
		return fmt.Errorf("psql: POSTGRES_USER is not set in %s", ctx.Config.Env.File)
	}
	argv := append([]string{"psql", "-U", user}, ctx.Args...)
	return ctx.Compose.ExecInService(ctx.Context(), ctx.Config.Services.Database, argv...)
}

func handleRedisCLI(ctx *cmdregistry.Context) error {
	argv := append([]string{"redis-cli"}, ctx.Args...)
	return ctx.Compose.ExecInService(ctx.Context(), ctx.Config.Services.Cache, argv...)
}
