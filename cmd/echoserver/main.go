package main

import (
	"time"

	"github.com/kelpline/backlog"
	"github.com/kelpline/backlog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine

	logger *backlog.Logger
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	es.logger.WriteLine("echoed " + c.RemoteAddr().String())
	return gnet.None
}

func main() {
	logger, err := backlog.NewBuilder().
		Directory("./gnet_logs").
		NamePrefix("echo").
		FlushIntervalS(2).
		Build()
	if err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Stop(5 * time.Second)

	adapter := compat.NewGnetAdapter(logger)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{logger: logger},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(adapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
