package cli

import (
	"fmt"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/config"
	"github.com/roach88/hearth/internal/relay"
	"github.com/roach88/hearth/internal/relay/archive"
	"github.com/roach88/hearth/internal/signer/testsigner"
	"github.com/roach88/hearth/internal/views"
)

// openService wires a view service over the capture archive. The
// archive is the CLI's only record source: captures are reconciled
// offline, and anything "published" (the replay command's scripted
// writes aside) lands back in the local archive, never on a network
// relay. The deterministic signer is enough here because the CLI's
// identity is only used to scope derivations.
func openService(opts *RootOptions) (*views.Service, func() error, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "load config", err)
	}

	path := opts.Archive
	if path == "" {
		path = cfg.ArchivePath
	}
	if path == "" {
		return nil, nil, NewExitError(ExitCommandError,
			"no capture archive: pass --archive or set archive_path in the config")
	}

	arch, err := archive.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("open archive %s", path), err)
	}

	pool := relay.NewPool([]relay.Relay{arch}, cfg.QueryTimeout(), nil)
	svc := views.NewService(pool, cache.New(cfg.CacheTTL()), testsigner.New(opts.As, nil), nil)
	return svc, arch.Close, nil
}

// openArchive opens just the capture archive, for commands that write
// records directly.
func openArchive(opts *RootOptions) (*archive.Archive, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	path := opts.Archive
	if path == "" {
		path = cfg.ArchivePath
	}
	if path == "" {
		return nil, NewExitError(ExitCommandError,
			"no capture archive: pass --archive or set archive_path in the config")
	}
	arch, err := archive.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("open archive %s", path), err)
	}
	return arch, nil
}
