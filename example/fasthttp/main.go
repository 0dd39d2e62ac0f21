package main

import (
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/wbrk/dmkit/compat"
	"github.com/wbrk/dmkit/log"
)

func main() {
	logger, err := log.NewBuilder().
		Ident("fasthttp-demo").
		LevelString("info|warn|error").
		FilePath("./fasthttp_demo.log").
		Build()
	if err != nil {
		panic(err)
	}

	// Create fasthttp adapter with level detection from message content
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(log.LevelInfo),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:         "dmkit-demo",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}
