package main

import (
	"os"

	"github.com/panjf2000/gnet/v2"

	"github.com/wbrk/dmkit/compat"
	"github.com/wbrk/dmkit/log"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	logger, err := log.NewBuilder().
		Ident("gnet-echo").
		LevelString("debug|info|warn|error").
		FileSink(os.Stdout).
		Build()
	if err != nil {
		panic(err)
	}

	gnetAdapter := compat.NewGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
