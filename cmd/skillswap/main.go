package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/octabyte/skillswap-client/client"
	"github.com/octabyte/skillswap-client/config"
	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/otel"
	"github.com/octabyte/skillswap-client/utils/logger"
	"go.uber.org/zap"
)

const appName = "SkillSwap"

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	logger.Sync()
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, apperrors.Message(err))
		os.Exit(1)
	}
}

type app struct {
	client *client.Client
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	global := flag.NewFlagSet("skillswap", flag.ContinueOnError)
	global.SetOutput(out)
	envFile := global.String("env", ".env", "optional .env file with SKILLSWAP_* settings")
	global.Usage = func() { usage(global) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		displayAppname(out)
		usage(global)
		return errUsage
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}

	logger.Init(&logger.Config{
		Level:       cfg.Log.Level,
		Env:         cfg.Log.Env,
		ServiceName: cfg.Log.ServiceName,
		Console:     true,
	})

	shutdown, err := otel.InitOpenTelemetry(ctx, otel.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		Endpoint:    cfg.Otel.Endpoint,
		ServiceName: cfg.Log.ServiceName,
		Headers:     cfg.Otel.Headers,
		Environment: cfg.Log.Env,
		SampleRate:  cfg.Otel.SampleRate,
	})
	if err != nil {
		logger.LogWarn("opentelemetry disabled", zap.Error(err))
		shutdown = func() {}
	}
	defer shutdown()

	a := &app{cfg: cfg, in: in, out: out}
	c, err := client.New(ctx, cfg, client.WithNavigator(terminalNavigator(out)))
	if err != nil {
		return err
	}
	defer c.Close()
	a.client = c

	if _, err := c.Start(ctx); err != nil {
		return err
	}

	name, rest := global.Arg(0), global.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(out, "unknown command %q\n\n", name)
		usage(global)
		return errUsage
	}
	return cmd.run(ctx, a, rest)
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "Usage: skillswap [-env file] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fs.PrintDefaults()
}

func displayAppname(out io.Writer) {
	myFigure := figure.NewFigure(appName, "cybermedium", true)
	fmt.Fprintln(out, myFigure.String())
}
