package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-devpot"
	"github.com/spf13/cobra"
)

// handlerSet is what the CLI needs from a module.
type handlerSet struct {
	build       command.Commander[devpot.BuildSiteCommand]
	clean       command.Commander[devpot.CleanSiteCommand]
	routes      command.Commander[devpot.ListRoutesQuery]
	search      command.Commander[devpot.SearchQuery]
	serve       func(ctx context.Context, addr string, watch bool) error
	defaultLang string
	close       func() error
}

// loadHandlers is replaced in tests.
var loadHandlers = func(ctx context.Context, opts devpot.LoadOptions) (*handlerSet, error) {
	cfg, err := devpot.LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	module, err := devpot.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	cmds := module.Commands()
	return &handlerSet{
		build:  cmds.Build,
		clean:  cmds.Clean,
		routes: cmds.Routes,
		search: cmds.Search,
		serve: func(ctx context.Context, addr string, watch bool) error {
			if err := cmds.Build.Execute(ctx, devpot.BuildSiteCommand{}); err != nil {
				return err
			}
			srv, err := module.Server(addr, watch)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
		defaultLang: module.Config().Site.DefaultLanguage,
		close:       module.Close,
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	app := &cli{out: out}
	root := app.rootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	err := root.ExecuteContext(ctx)
	if app.handlers != nil && app.handlers.close != nil {
		if closeErr := app.handlers.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

type cli struct {
	out      io.Writer
	cfgFile  string
	logLevel string
	handlers *handlerSet
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "devpot",
		Short:         "Build the multilingual devpot blog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initialize(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./devpot.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error)")

	root.AddCommand(
		c.buildCommand(),
		c.cleanCommand(),
		c.routesCommand(),
		c.searchCommand(),
		c.serveCommand(),
	)
	return root
}

func (c *cli) initialize(ctx context.Context) error {
	opts := devpot.LoadOptions{File: c.cfgFile}
	if level := strings.TrimSpace(c.logLevel); level != "" {
		opts.Overrides = map[string]any{"logging.level": level}
	}
	handlers, err := loadHandlers(ctx, opts)
	if err != nil {
		return err
	}
	c.handlers = handlers
	return nil
}
