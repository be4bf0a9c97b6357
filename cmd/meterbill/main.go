package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/utilitydesk/meterbill/internal/config"
	"github.com/utilitydesk/meterbill/internal/migration"
	"github.com/utilitydesk/meterbill/internal/observability"
	"github.com/utilitydesk/meterbill/internal/server"
	"github.com/utilitydesk/meterbill/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
