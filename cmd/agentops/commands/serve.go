package commands

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/ajilantony/copilot-agentops-mcp/cmd"
	"github.com/ajilantony/copilot-agentops-mcp/internal/config"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/mcpserver"
)

var (
	serveTransport string
	serveAddr      string
)

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "MCP transport: stdio or http (default from config, stdio)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address for --transport http (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server",
	Long: `Start a Model Context Protocol server exposing the catalog as tools:
  - search_instructions: search artifacts by keyword and mode
  - search_collections:  search curated collections
  - get_collection:      show one collection by id
  - install_artifact:    install one artifact into a repository
  - load_artifact:       read an artifact without installing it
  - refresh_index:       refetch the remote listing

Logs go to stderr; over stdio, stdout carries only protocol messages.`,
	Example: `  # stdio, for editor integrations
  agentops serve

  # streamable HTTP
  agentops serve --transport http --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		svc, cfg, err := service(c)
		if err != nil {
			return err
		}

		transport, addr := cfg.Server.Transport, cfg.Server.Addr
		if serveTransport != "" {
			transport = serveTransport
		}
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := mcpserver.New(svc, mcpserver.Options{
			Version: cmd.Short(),
			Logger:  logging.FromContext(c.Context()).With("component", "mcp"),
		})

		switch transport {
		case config.TransportStdio:
			return srv.Run(c.Context(), &mcp.StdioTransport{})
		case config.TransportHTTP:
			return srv.ServeHTTP(c.Context(), addr)
		default:
			return errors.NewUserError(errors.Newf("unknown transport %q", transport), "valid transports: stdio, http")
		}
	},
}
