package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mavscope/mavscope/internal/bus"
	"github.com/mavscope/mavscope/internal/config"
	"github.com/mavscope/mavscope/internal/monitor"
	"github.com/mavscope/mavscope/internal/stats"
	"github.com/mavscope/mavscope/internal/subscriber"
	"github.com/mavscope/mavscope/internal/ui"
	"github.com/mavscope/mavscope/internal/ws"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage : %s <connection_url>\n", os.Args[0])
	fmt.Fprint(os.Stderr,
		"Connection URL format should be :\n"+
			" For TCP server: tcpin://<our_ip>:<port>\n"+
			" For TCP client: tcpout://<remote_ip>:<port>\n"+
			" For UDP server: udpin://<our_ip>:<port>\n"+
			" For UDP client: udpout://<remote_ip>:<port>\n"+
			" For Serial : serial://</path/to/serial/dev>:<baudrate>\n"+
			"For example, to connect to a serial device: serial:///dev/ttyUSB0:57600\n")
}

func main() {
	configPath := flag.String("config", "", "Path to config file (optional)")
	mockMode := flag.Bool("mock", false, "Use a simulated message feed instead of a live connection")
	plainMode := flag.Bool("plain", false, "Plain table output instead of the interactive dashboard")
	serveMode := flag.Bool("serve", false, "Expose statistics over WebSocket/HTTP")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the dashboard, so logs go to a rotating file.
	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	var feed bus.Feed
	if *mockMode {
		feed = bus.NewMock(cfg.Monitor.Messages)
	} else {
		if flag.NArg() != 1 {
			usage()
			os.Exit(1)
		}
		mav, err := bus.NewMAVLink(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Connection failed: %v\n", err)
			os.Exit(1)
		}
		feed = mav
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	if err := run(ctx, cancel, feed, cfg, *plainMode, *serveMode); err != nil {
		if errors.Is(err, monitor.ErrNoDevice) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type quitter interface {
	Quit()
}

// quitWhenDone tells the dashboard to exit once the session ends, whether
// by signal or by the runner failing mid-session. Without it, Bubble Tea
// would keep rendering a frozen frame after everything behind it stopped.
func quitWhenDone(ctx context.Context, runDone <-chan struct{}, q quitter) {
	go func() {
		select {
		case <-ctx.Done():
		case <-runDone:
		}
		q.Quit()
	}()
}

func run(ctx context.Context, cancel context.CancelFunc, feed bus.Feed, cfg *config.Config, plainMode, serveMode bool) error {
	store := stats.NewStore(time.Now())
	sub := subscriber.New(feed, store, cfg.Monitor.Messages)
	runner := monitor.NewRunner(feed, sub)

	if serveMode || cfg.Server.Enabled {
		broadcaster := ws.NewBroadcaster(store, cfg.Monitor.Messages, cfg.Monitor.TickInterval)
		server := ws.NewServer(broadcaster, cfg.Server.Host, cfg.Server.Port)
		runner.Go(broadcaster.Run)
		runner.Go(server.Run)
	}

	if plainMode {
		renderer := ui.NewPlainRenderer(store, cfg.Monitor.Messages, cfg.Monitor.TickInterval, os.Stdout)
		runner.Go(func(ctx context.Context) error {
			if err := monitor.WaitReady(ctx, feed, cfg.Monitor, os.Stdout); err != nil {
				return err
			}
			return renderer.Run(ctx)
		})
		return runner.Run(ctx)
	}

	// Interactive mode: the runner supervises the feed in the background
	// while Bubble Tea owns the terminal on this goroutine.
	runErr := make(chan error, 1)
	runDone := make(chan struct{})
	go func() {
		runErr <- runner.Run(ctx)
		close(runDone)
	}()

	if err := monitor.WaitReady(ctx, feed, cfg.Monitor, os.Stdout); err != nil {
		cancel()
		<-runErr
		return err
	}

	m := ui.New(store, feed, cfg.Monitor.Messages, cfg.ExpectedRate, cfg.Monitor.TickInterval, cancel)
	p := tea.NewProgram(m, tea.WithAltScreen())
	quitWhenDone(ctx, runDone, p)
	if _, err := p.Run(); err != nil {
		cancel()
		<-runErr
		return err
	}

	cancel()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
