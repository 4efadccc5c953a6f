// Package main is the entry point for the agentops CLI and MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ajilantony/copilot-agentops-mcp/cmd/agentops/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
