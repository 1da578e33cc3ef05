package system

import (
	"github.com/Sai2211201144/learn-ai-2/internal/api"
	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/config"
	"github.com/Sai2211201144/learn-ai-2/internal/logger"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Overrides server.addr from the config."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	logger.SetDebug(ctx.Config.Debug, true)
	watchConfig(ctx, true)

	ctx.Printf("Serving the learnai API on http://%s (Ctrl+C to stop)\n", addr)
	return api.NewServer(ctx.App).Run(ctx.Context(), addr)
}

// watchConfig applies debug and rate limit edits to a running session.
func watchConfig(ctx *cli.Context, stderr bool) {
	ctx.Loader.Watch(func(cfg *config.Config) {
		logger.SetDebug(cfg.Debug, stderr)
		if ctx.Client != nil {
			ctx.Client.SetRequestsPerMinute(cfg.AI.RequestsPerMinute)
		}
	})
}
