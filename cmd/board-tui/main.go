package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/DoyleJ11/volley-rotation-board/internal/config"
	"github.com/DoyleJ11/volley-rotation-board/internal/engine"
	"github.com/DoyleJ11/volley-rotation-board/internal/tui"
)

var (
	policyFlag = flag.String("policy", "", "drag policy: snap or clamp (default from DRAG_POLICY)")
	logFile    = flag.String("log", "", "write logs to this file; the terminal is owned by the board")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *policyFlag != "" {
		cfg.DragPolicy = engine.ParsePolicy(*policyFlag)
	}

	log := zap.NewNop()
	if *logFile != "" {
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{*logFile}
		zc.ErrorOutputPaths = []string{*logFile}
		if log, err = zc.Build(); err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = log.Sync() }()

	if err := engine.StandardRosters.Validate(); err != nil {
		log.Warn("roster is not a standard 5-1", zap.Error(err))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shell := tui.New(screen, engine.NewBoard(engine.StandardDefaults, cfg.DragPolicy), cfg.CompactBreakpoint, log)
	if err := shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("board exited", zap.Error(err))
	}
}
