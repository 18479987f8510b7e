// Command aoc solves grid puzzles and serves the solver.
//
// Commands:
//  1. "solve" – solves one part of a puzzle and prints the answer
//  2. "list" – lists the registered puzzles and their parameter defaults
//  3. "validate" – solves part 1 of every stored input to check it parses
//  4. "serve" – runs the HTTP server exposing REST API, WebSocket, metrics and an /mcp endpoint
//  5. "mcp" – runs an MCP stdio server, spinning up an internal HTTP API if none is available
//
// Every flag has an AOC_* environment variable and a .env entry behind it,
// and serve can open an ngrok tunnel for external access during development.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/SzymonKubica/advent-of-code/api"
	"github.com/SzymonKubica/advent-of-code/puzzles"
	"github.com/SzymonKubica/advent-of-code/runner/config"
	"github.com/SzymonKubica/advent-of-code/runner/runs"
	"github.com/SzymonKubica/advent-of-code/runner/service"
	"github.com/SzymonKubica/advent-of-code/transport/mcp"
	"github.com/SzymonKubica/advent-of-code/transport/websocket"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
	"golang.org/x/sync/errgroup"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "aoc"
)

// Maintenance intervals for the serve command
const (
	runRetention    = 7 * 24 * time.Hour
	cleanupInterval = 1 * time.Hour
	syncInterval    = 5 * time.Second
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newApp(settings, os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flag defaults come from settings, so the
// precedence is flag, then environment, then .env, then built-in default.
func newApp(settings *config.Settings, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "solve Advent of Code grid puzzles",
		Version: Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Value:   settings.Debug,
				Sources: cli.EnvVars("AOC_DEBUG"),
			},
			&cli.StringFlag{
				Name:    "input-dir",
				Usage:   "directory of <puzzle>.txt input files",
				Value:   settings.InputDir,
				Sources: cli.EnvVars("AOC_INPUT_DIR"),
			},
			&cli.StringFlag{
				Name:    "runs-dir",
				Usage:   "directory where serve persists runs",
				Value:   settings.RunsDir,
				Sources: cli.EnvVars("AOC_RUNS_DIR"),
			},
			&cli.Int64Flag{
				Name:    "cache-size",
				Usage:   "answer cache capacity, 0 disables the cache",
				Value:   settings.CacheSize,
				Sources: cli.EnvVars("AOC_CACHE_SIZE"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			configureLogging(cmd.Bool("debug"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			solveCommand(),
			listCommand(),
			validateCommand(),
			serveCommand(settings),
			mcpCommand(settings),
		},
	}
}

// configureLogging sets up the standard logrus logger
func configureLogging(debug bool) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// settingsFrom overlays parsed flag values on base
func settingsFrom(cmd *cli.Command, base *config.Settings) *config.Settings {
	s := *base
	s.Debug = cmd.Bool("debug")
	s.InputDir = cmd.String("input-dir")
	s.RunsDir = cmd.String("runs-dir")
	s.CacheSize = cmd.Int64("cache-size")
	return &s
}

// openInputs returns the input manager for dir, or nil when dir is missing
func openInputs(dir string) service.InputManager {
	inputs, err := config.NewManager(dir)
	if err != nil {
		logrus.WithError(err).Debug("Input directory unavailable")
		return nil
	}
	return inputs
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "solve one part of a puzzle and print the answer",
		ArgsUsage: "<puzzle>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "part", Aliases: []string{"p"}, Value: 1, Usage: "puzzle part"},
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "input file, - for stdin (default: <input-dir>/<puzzle>.txt)"},
			&cli.StringSliceFlag{Name: "param", Aliases: []string{"P"}, Usage: "parameter override as key=value, repeatable"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print run details after the answer"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("solve: puzzle name is required")
			}
			params, err := puzzles.ParseParams(cmd.StringSlice("param"))
			if err != nil {
				return err
			}

			req := &service.SolveRequest{
				Puzzle: name,
				Part:   int(cmd.Int("part")),
				Params: params,
			}
			if path := cmd.String("input"); path != "" {
				text, err := readInput(path, cmd.Root().Reader)
				if err != nil {
					return err
				}
				req.Text = text
			}

			solver, err := service.NewSolverService(puzzles.Builtin(), openInputs(cmd.String("input-dir")), nil,
				service.WithCacheSize(0))
			if err != nil {
				return err
			}
			run, err := solver.Solve(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			fmt.Fprintln(out, run.Answer)
			if cmd.Bool("verbose") {
				fmt.Fprintf(out, "%s part %d on %s in %s\n", run.Puzzle, run.Part, run.Input, run.Duration)
			}
			return nil
		},
	}
}

// readInput reads path, or r when path is "-"
func readInput(path string, r io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		if r == nil {
			r = os.Stdin
		}
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list registered puzzles",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer
			for _, p := range puzzles.Builtin().List() {
				fmt.Fprintf(out, "%d day %2d  %-9s %s", p.Year, p.Day, p.Name, p.Title)
				if len(p.Defaults) > 0 {
					fmt.Fprintf(out, " [%s]", p.Defaults.Key())
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

// validateResult is the outcome of checking one input file
type validateResult struct {
	input  *config.Input
	answer int
	took   time.Duration
	err    error
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "solve part 1 of every input whose name matches a puzzle",
		ArgsUsage: "[dir]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = cmd.String("input-dir")
			}
			results, err := validateInputs(ctx, puzzles.Builtin(), dir)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %-9s %v\n", r.input.Name, r.err)
					continue
				}
				fmt.Fprintf(out, "ok   %-9s %dx%d %s answer=%d (%s)\n",
					r.input.Name, r.input.Cols, r.input.Rows, humanize.Bytes(uint64(r.input.Bytes)), r.answer, r.took)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed validation", failed, len(results))
			}
			fmt.Fprintf(out, "%d inputs valid\n", len(results))
			return nil
		},
	}
}

// validateInputs solves part 1 of every input named after a puzzle.
// Inputs for unknown puzzles are skipped.
func validateInputs(ctx context.Context, registry *puzzles.Registry, dir string) ([]validateResult, error) {
	inputs, err := config.NewManager(dir)
	if err != nil {
		return nil, err
	}
	list, err := inputs.List()
	if err != nil {
		return nil, err
	}

	var results []validateResult
	for _, in := range list {
		if _, err := registry.Lookup(in.Name); err != nil {
			logrus.WithField("input", in.Name).Debug("Skipping input without a puzzle")
			continue
		}
		results = append(results, validateResult{input: in})
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range results {
		r := &results[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, _ := registry.Lookup(r.input.Name)
			start := time.Now()
			r.answer, r.err = p.Solve(ctx, 1, r.input.Text, nil)
			r.took = time.Since(start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func serveCommand(settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server (REST API, WebSocket, metrics, /mcp)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: settings.Host, Sources: cli.EnvVars("AOC_HOST"), Usage: "HTTP server host"},
			&cli.IntFlag{Name: "port", Value: settings.Port, Sources: cli.EnvVars("AOC_PORT"), Usage: "HTTP server port"},
			&cli.BoolFlag{Name: "ngrok", Value: settings.NgrokEnabled, Sources: cli.EnvVars("AOC_NGROK_ENABLED", "NGROK_ENABLED"), Usage: "enable ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Value: settings.NgrokAuthToken, Sources: cli.EnvVars("AOC_NGROK_AUTHTOKEN", "NGROK_AUTHTOKEN"), Usage: "ngrok auth token"},
			&cli.StringFlag{Name: "ngrok-domain", Value: settings.NgrokDomain, Sources: cli.EnvVars("AOC_NGROK_DOMAIN", "NGROK_DOMAIN"), Usage: "custom ngrok domain (optional)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s := settingsFrom(cmd, settings)
			s.Host = cmd.String("host")
			s.Port = int(cmd.Int("port"))
			s.NgrokEnabled = cmd.Bool("ngrok")
			s.NgrokAuthToken = cmd.String("ngrok-auth")
			s.NgrokDomain = cmd.String("ngrok-domain")

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runHTTPServer(ctx, s)
		},
	}
}

// backend is everything an HTTP surface needs
type backend struct {
	solver  service.SolverService
	runs    *runs.Manager
	hub     *websocket.Hub
	metrics *prometheus.Registry
}

// newBackend wires inputs, persisted runs, the hub, metrics and the solver
func newBackend(s *config.Settings) (*backend, error) {
	persistence, err := runs.NewFilePersistence(s.RunsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create run persistence: %w", err)
	}
	runManager := runs.NewManagerWithPersistence(persistence)
	if err := runManager.LoadPersisted(); err != nil {
		logrus.WithError(err).Warn("Failed to load persisted runs")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hub := websocket.NewHub()
	solver, err := service.NewSolverService(puzzles.Builtin(), openInputs(s.InputDir), runManager,
		service.WithCacheSize(s.CacheSize),
		service.WithMetrics(reg),
		service.WithNotifier(hub),
	)
	if err != nil {
		return nil, err
	}

	return &backend{solver: solver, runs: runManager, hub: hub, metrics: reg}, nil
}

// handler mounts the API and an /mcp endpoint that proxies to baseURL
func (b *backend) handler(baseURL string) http.Handler {
	apiServer := api.NewServer(b.solver, b.hub, api.WithGatherer(b.metrics))
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// maintain drops old runs and runs whose files were deleted until ctx ends
func (b *backend) maintain(ctx context.Context) {
	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()
	prune := time.NewTicker(syncInterval)
	defer prune.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanup.C:
			if removed := b.runs.CleanupOlderThan(runRetention); removed > 0 {
				logrus.WithField("count", removed).Info("Cleaned up old runs")
			}
		case <-prune.C:
			if pruned := b.runs.PruneMissing(); pruned > 0 {
				logrus.WithField("count", pruned).Info("Pruned runs whose files were deleted")
			}
		}
	}
}

// runHTTPServer serves until ctx is cancelled, then shuts down gracefully.
// With ngrok enabled it also serves through a public tunnel.
func runHTTPServer(ctx context.Context, s *config.Settings) error {
	b, err := newBackend(s)
	if err != nil {
		return err
	}
	go b.hub.Run()
	defer b.hub.Stop()

	addr := s.Addr()
	handler := b.handler(fmt.Sprintf("http://%s", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		b.maintain(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		logrus.WithFields(logrus.Fields{
			"rest":      fmt.Sprintf("http://%s/api", addr),
			"websocket": fmt.Sprintf("ws://%s/ws?puzzle=<name>", addr),
			"mcp":       fmt.Sprintf("http://%s/mcp", addr),
			"metrics":   fmt.Sprintf("http://%s/metrics", addr),
		}).Infof("HTTP server listening on %s", addr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
			cancel()
		}
	}()

	if s.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveNgrok(ctx, s, handler)
		}()
	}

	<-ctx.Done()
	logrus.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP server shutdown error")
	}

	wg.Wait()
	logrus.Info("Server stopped")

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// serveNgrok serves handler through an ngrok tunnel until ctx ends
func serveNgrok(ctx context.Context, s *config.Settings, handler http.Handler) {
	if s.NgrokAuthToken == "" {
		logrus.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	logrus.Info("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if s.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(s.NgrokDomain))
		logrus.WithField("domain", s.NgrokDomain).Info("Using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(s.NgrokAuthToken))
	if err != nil {
		logrus.WithError(err).Warn("Failed to start ngrok tunnel")
		return
	}

	ngrokURL := tun.URL()
	logrus.WithFields(logrus.Fields{
		"rest": ngrokURL + "/api",
		"mcp":  ngrokURL + "/mcp",
	}).Infof("Ngrok tunnel established: %s", ngrokURL)

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close ngrok tunnel")
		}
	}()

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		logrus.WithError(err).Warn("Ngrok server error")
	}
	logrus.Info("Ngrok tunnel closed")
}

func mcpCommand(settings *config.Settings) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "run an MCP stdio server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "REST API to proxy; an internal server is started when it is unreachable",
				Value:   "http://" + settings.Addr(),
				Sources: cli.EnvVars("AOC_API_URL"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStdioMCP(ctx, settingsFrom(cmd, settings), cmd.String("api-url"))
		},
	}
}

// apiAvailable reports whether a REST API answers at baseURL
func apiAvailable(baseURL string) bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// runStdioMCP runs an MCP stdio server against externalURL, or against an
// internal HTTP API on a random loopback port when nothing answers there
func runStdioMCP(ctx context.Context, s *config.Settings, externalURL string) error {
	baseURL := externalURL

	logrus.Debugf("Checking for external API server at %s...", externalURL)
	if apiAvailable(externalURL) {
		logrus.Infof("External API server found at %s, using it for MCP", externalURL)
	} else {
		logrus.Info("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalAddr := listener.Addr().String()

		b, err := newBackend(s)
		if err != nil {
			listener.Close()
			return err
		}
		go b.hub.Run()
		defer b.hub.Stop()

		baseURL = "http://" + internalAddr
		httpServer := &http.Server{Handler: b.handler(baseURL)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Warn("Internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		logrus.Infof("Internal HTTP server for MCP stdio on %s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)
	logrus.Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
