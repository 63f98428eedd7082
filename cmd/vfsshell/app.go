package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"vfsshell/internal/config"
	"vfsshell/internal/fs"
	"vfsshell/internal/logging"
	"vfsshell/internal/shell"
	"vfsshell/internal/snapshot"

	"github.com/urfave/cli/v2"
)

const (
	flagCSV        = "vfs-csv"
	flagScript     = "script"
	flagVerbose    = "verbose"
	flagMountpoint = "mountpoint"
)

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	cfg := config.Default()

	return &cli.App{
		Name:      "vfsshell",
		Usage:     "browse a CSV snapshot as an in-memory virtual filesystem",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		// main reports errors and picks the exit status.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagCSV,
				Usage: "snapshot to load (path,type,content CSV, optionally .gz); defaults to $VFS_CSV",
			},
			&cli.StringFlag{
				Name:  flagScript,
				Usage: "run commands from `FILE` instead of standard input",
			},
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx *cli.Context) error {
			loaded, err := config.Load()
			if err != nil {
				return cli.Exit(err, 1)
			}
			*cfg = *loaded

			logCfg := logging.Config{Level: cfg.LogLevel, Development: cfg.LogDev}
			if ctx.Bool(flagVerbose) {
				logCfg.Level = "debug"
			}
			if err := logging.GetLogger().Configure(logCfg); err != nil {
				return cli.Exit(fmt.Sprintf("invalid log configuration: %v", err), 1)
			}
			return nil
		},
		Action: func(ctx *cli.Context) error {
			return runShell(ctx, cfg)
		},
		Commands: []*cli.Command{
			{
				Name:  "mount",
				Usage: "serve the snapshot read-only at a FUSE mount point",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagMountpoint,
						Usage:    "directory to mount the filesystem on",
						Required: true,
					},
				},
				Action: func(ctx *cli.Context) error {
					return runMount(ctx, cfg)
				},
			},
		},
	}
}

// loadTree builds the tree from the snapshot named by --vfs-csv or the
// configured default. Any failure is fatal.
func loadTree(ctx *cli.Context, cfg *config.Config) (*fs.Tree, error) {
	path := ctx.String(flagCSV)
	if path == "" {
		path = cfg.CSV
	}
	if path == "" {
		return nil, cli.Exit(fmt.Sprintf("--%s is required", flagCSV), 1)
	}

	logger.Info("Loading snapshot %s", path)
	records, err := snapshot.Open(path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("failed to load VFS: %v", err), 1)
	}

	tree := fs.NewTree()
	if err := tree.Load(records); err != nil {
		return nil, cli.Exit(fmt.Sprintf("failed to load VFS: %v", err), 1)
	}
	return tree, nil
}

func runShell(ctx *cli.Context, cfg *config.Config) error {
	tree, err := loadTree(ctx, cfg)
	if err != nil {
		return err
	}

	in := ctx.App.Reader
	opts := []shell.Option{
		shell.WithPrompt(cfg.Prompt),
		shell.WithExpandEnv(cfg.ExpandEnv),
	}
	if script := ctx.String(flagScript); script != "" {
		f, err := os.Open(script)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to open script: %v", err), 1)
		}
		defer f.Close()
		in = f
		opts = append(opts, shell.WithEcho(true))
	}

	return shell.New(tree, ctx.App.Writer, opts...).Run(ctx.Context, in)
}

func runMount(ctx *cli.Context, cfg *config.Config) error {
	tree, err := loadTree(ctx, cfg)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return fs.NewFS(tree).Serve(sigCtx, ctx.String(flagMountpoint))
}
