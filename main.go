package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gopxl/beep"

	"github.com/ypthao011/aquarium/audio"
	"github.com/ypthao011/aquarium/config"
	"github.com/ypthao011/aquarium/game"
	"github.com/ypthao011/aquarium/renderer"
	"github.com/ypthao011/aquarium/scripting"
	"github.com/ypthao011/aquarium/server"
	"github.com/ypthao011/aquarium/telemetry"
	"github.com/ypthao011/aquarium/ui"
)

// Screen layout for the graphical front end.
const (
	hudHeight      = 44
	playfieldX     = 10
	playfieldY     = 52
	shopMargin     = 10
	controlsLegend = "Click: drop food (1g) | Drag: move | Drag to SELL: sell | Right click: info | Esc: cancel | P: perf"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	serve := flag.Bool("serve", false, "Serve the game to browsers over websocket")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	journalDir := flag.String("journal", "", "Directory for the transaction journal")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	autofeed := flag.Int("autofeed", 0, "Headless: drop food every N ticks (0 = never)")
	script := flag.String("script", "", "Lua script overriding sell values (empty = use config)")
	audioOut := flag.String("audio-out", "", "Render one loop of the background music to this WAV file and exit")
	mute := flag.Bool("mute", false, "Disable audio output")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *audioOut != "" {
		rate := beep.SampleRate(cfg.Audio.SampleRate)
		if err := audio.WriteWAV(*audioOut, rate, cfg.Audio.Volume, audio.LoopLength); err != nil {
			slog.Error("failed to render music", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote music loop", "file", *audioOut, "length", audio.LoopLength)
		return
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:     rngSeed,
		LogStats: *logStats,
	}

	scriptPath := cfg.Scripting.SellValueScript
	if *script != "" {
		scriptPath = *script
	}
	if scriptPath != "" {
		engine, err := scripting.NewEngine(scriptPath)
		if err != nil {
			slog.Error("failed to load script", "error", err)
			os.Exit(1)
		}
		defer engine.Close()
		opts.Pricer = engine
	}

	if *outputDir != "" {
		om, err := telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
			os.Exit(1)
		}
		if err := om.WriteConfig(cfg); err != nil {
			slog.Warn("failed to write config snapshot", "error", err)
		}
		opts.Output = om
	}

	if *journalDir != "" {
		j, err := telemetry.OpenJournal(*journalDir)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		opts.Journal = j
	}

	var err error
	switch {
	case *headless:
		err = runHeadless(cfg, opts, *maxTicks, *autofeed)
	case *serve:
		err = runServer(cfg, opts, newPlayer(cfg, *mute))
	default:
		err = runWindow(cfg, opts, newPlayer(cfg, *mute), *maxTicks)
	}
	if err != nil {
		slog.Error("exited with error", "error", err)
		os.Exit(1)
	}
}

// newPlayer opens the audio device, or returns nil when muted or when no
// device is available.
func newPlayer(cfg *config.Config, mute bool) *audio.Player {
	if mute {
		return nil
	}
	p := audio.NewPlayer(cfg.Audio)
	if err := p.Start(); err != nil {
		slog.Warn("audio disabled", "error", err)
		return nil
	}
	return p
}

func withCues(p game.Presenter, player *audio.Player) game.Presenter {
	if player == nil {
		return p
	}
	return game.WithCues(p, player)
}

// runHeadless steps the simulation on a simulated clock as fast as possible.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks, autofeed int) error {
	clock := game.NewSimClock(time.Now())
	opts.Clock = clock
	g := game.NewGame(cfg, opts)
	defer g.Close()

	rng := rand.New(rand.NewSource(opts.Seed))
	frame := cfg.Derived.FrameDT

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"autofeed", autofeed,
	)

	for {
		if autofeed > 0 && int(g.Tick())%autofeed == 0 {
			x := cfg.Playfield.Padding + rng.Float64()*(cfg.Playfield.Width-2*cfg.Playfield.Padding)
			g.PlayfieldClick(x, rng.Float64()*cfg.Playfield.Height/3)
		}

		g.Step()
		clock.Advance(frame)
		g.Advance(frame)

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			g.LogWorldState()
			return nil
		}
	}
}

// runServer runs the simulation on the scheduler goroutine and streams
// frames to websocket clients until interrupted.
func runServer(cfg *config.Config, opts game.Options, player *audio.Player) error {
	if player != nil {
		defer player.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := server.NewHub(cfg.Server.SendBuffer)
	opts.Presenter = withCues(server.NewFramePresenter(hub), player)
	g := game.NewGame(cfg, opts)
	defer g.Close()

	sched := game.NewScheduler(g, cfg.Server.InputBuffer)
	srv, err := server.New(cfg, hub, sched)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe(ctx)
		cancel()
	}()

	slog.Info("serving aquarium", "addr", cfg.Server.Addr, "seed", opts.Seed)

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return <-errc
}

// runWindow runs the raylib front end. Pointer events are translated to
// playfield coordinates and applied directly on the render goroutine.
func runWindow(cfg *config.Config, opts game.Options, player *audio.Player, maxTicks int) error {
	if player != nil {
		defer player.Close()
	}

	screenW, screenH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	rl.InitWindow(screenW, screenH, "Aquarium")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Esc cancels placement

	scene := renderer.NewScene(cfg, playfieldX, playfieldY, rand.New(rand.NewSource(opts.Seed)))
	opts.Presenter = withCues(scene, player)
	g := game.NewGame(cfg, opts)
	defer g.Close()

	shopX := float32(playfieldX + cfg.Playfield.Width + shopMargin)
	hud := ui.NewHUD(screenW, hudHeight)
	shop := ui.NewShop(cfg.Species, shopX, playfieldY, float32(screenW)-shopX-shopMargin, cfg.Audio.Volume)
	perf := ui.NewPerfPanel(playfieldX+16, playfieldY+16)
	sheetPanel := ui.NewStatSheetPanel(int32(shopX), screenH-220, int32(float32(screenW)-shopX-shopMargin))

	var (
		dragging  bool
		showPerf  bool
		inspected uint32
		inspect   bool
	)

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		px, py, inside := scene.ToPlayfield(mouse.X, mouse.Y)

		switch {
		case rl.IsMouseButtonPressed(rl.MouseButtonLeft) && inside:
			if id, ok := scene.HitTest(px, py); ok {
				dragging = g.PointerDown(id, px, py) == nil
			} else {
				g.PlayfieldClick(px, py)
			}
		case rl.IsMouseButtonReleased(rl.MouseButtonLeft) && dragging:
			g.PointerUp(px, py)
			dragging = false
		case dragging:
			g.PointerMove(px, py)
		}

		if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
			inspected, inspect = scene.HitTest(px, py)
		}
		if rl.IsKeyPressed(rl.KeyEscape) {
			g.CancelPlacement()
			inspect = false
		}
		if rl.IsKeyPressed(rl.KeyP) {
			showPerf = !showPerf
		}

		dt := rl.GetFrameTime()
		g.Step()
		g.Advance(time.Duration(float64(dt) * float64(time.Second)))
		scene.Update(dt)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 6, G: 18, B: 32, A: 255})

		scene.Draw(float32(rl.GetTime()))
		hud.Draw(scene.HUD(), g.Ledger().Interval(), rl.GetFPS())
		hud.DrawControls(screenH, controlsLegend)

		action := shop.Draw(g.Balance())
		if action.Purchase != "" {
			_ = g.PurchaseRequested(action.Purchase) // failures are notified in game
		}
		if player != nil {
			vol := float64(action.Volume)
			if action.Muted {
				vol = 0
			}
			if vol != player.Volume() {
				player.SetVolume(vol)
			}
		}

		if inspect {
			sheet, err := g.StatSheet(inspected)
			if err != nil {
				inspect = false
			} else {
				sheetPanel.Draw(sheet)
			}
		}

		if showPerf {
			perf.Draw(g.PerfStats())
		}

		rl.EndDrawing()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
