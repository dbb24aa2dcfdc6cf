package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/janpfeifer/GoSet/internal/config"
	"github.com/janpfeifer/GoSet/internal/console"
	"github.com/janpfeifer/GoSet/internal/game"
	"k8s.io/klog/v2"
)

func main() {
	if err := initLogging(flag.CommandLine); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	defer klog.Flush()

	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}
	opts, err := sessionOptions(cfg)
	if err != nil {
		klog.Exitf("Invalid configuration: %v", err)
	}

	session, err := console.NewSession(opts)
	if err != nil {
		klog.Exitf("Failed to start a game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := session.Run(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		klog.Errorf("Session ended with error: %v", err)
		klog.Flush()
		os.Exit(1)
	}
}

// initLogging registers the klog flags (-v, -logtostderr, ...) on fs, which is
// shared with ours, and logs to stderr to keep stdout for the game.
func initLogging(fs *flag.FlagSet) error {
	klog.InitFlags(fs)
	if err := fs.Set("logtostderr", "true"); err != nil {
		return fmt.Errorf("setting -logtostderr: %w", err)
	}
	klog.SetOutput(os.Stderr)
	return nil
}

func sessionOptions(cfg config.Config) (console.Options, error) {
	mode, err := console.ParseMode(cfg.Mode)
	if err != nil {
		return console.Options{}, err
	}
	format, err := console.ParseFormat(cfg.Format)
	if err != nil {
		return console.Options{}, err
	}
	policy, err := game.ParseGrowPolicy(cfg.GrowPolicy)
	if err != nil {
		return console.Options{}, fmt.Errorf("GOSET_GROW_POLICY: %w", err)
	}
	return console.Options{
		Seed:       cfg.Seed,
		Mode:       mode,
		Format:     format,
		GrowPolicy: policy,
	}, nil
}
