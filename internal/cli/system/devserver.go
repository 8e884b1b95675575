package system

import (
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/devserver"
)

type DevServerCmd struct {
	Addr string `help:"Address to listen on." default:"${devserver_addr}"`
}

func (c *DevServerCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultDevServerAddr
	}
	ctx.Printf("Development backend on http://%s/api (in-memory, data is lost on exit)\n", addr)
	ctx.Printf("Point the client at it with %s=http://%s/api\n", constants.APIURLEnv, addr)
	return devserver.New(devserver.Options{}).ListenAndServe(ctx.Base, addr)
}
