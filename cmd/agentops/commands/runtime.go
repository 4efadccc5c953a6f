package commands

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/ajilantony/copilot-agentops-mcp/internal/catalog"
	"github.com/ajilantony/copilot-agentops-mcp/internal/config"
	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/install"
	"github.com/ajilantony/copilot-agentops-mcp/internal/lock"
	"github.com/ajilantony/copilot-agentops-mcp/internal/metadata"
	"github.com/ajilantony/copilot-agentops-mcp/internal/reconcile"
	"github.com/ajilantony/copilot-agentops-mcp/internal/remote"
)

// newService builds the production catalog. Tests replace it.
var newService = buildService

func buildService(cfg *config.Config, logger *slog.Logger) (*catalog.Service, error) {
	client, err := remote.New(remote.Config{
		BaseURL:      cfg.Repository.BaseURL,
		Owner:        cfg.Repository.Owner,
		Repository:   cfg.Repository.Name,
		Ref:          cfg.Repository.Ref,
		MetadataPath: cfg.Repository.MetadataPath,
		Token:        cfg.Repository.Token,
		Timeout:      cfg.Fetch.Timeout,
	}, nil, logger.With("component", "remote"))
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	cache, err := metadata.New(client, metadata.Options{
		TTL:            cfg.Cache.TTL,
		FetchTimeout:   cfg.Fetch.Timeout,
		ContentEntries: cfg.Cache.ContentEntries,
		Logger:         logger.With("component", "metadata"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating metadata cache")
	}

	fsys := afero.NewOsFs()
	rec := reconcile.New(fsys, cfg.Install.DefaultRoot)
	mgr := install.NewManager(cache, fsys, rec, lock.New(cfg.Install.LockDir), logger.With("component", "install"))
	return catalog.New(cache, rec, mgr, logger), nil
}
