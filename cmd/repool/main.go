// Command repool exercises and inspects repool object pools.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/repool/pkg/config"
	"github.com/ajitpratap0/repool/pkg/logger"
	"github.com/ajitpratap0/repool/pkg/message"
	"github.com/ajitpratap0/repool/pkg/metrics"
	"github.com/ajitpratap0/repool/pkg/pool"
	"github.com/ajitpratap0/repool/pkg/registry"
)

var version = "0.1.0"

// benchFlags holds command-line overrides for the bench configuration.
type benchFlags struct {
	configPath  string
	iterations  int
	payloadSize int
	warmup      int
	logLevel    string
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "repool",
		Short: "repool - Generic object pooling toolkit",
		Long: `repool is a generic object pooling library: per-type pools with
acquire/release semantics and a registry binding type identities to pools.
This command exercises the pools and reports their behavior.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repool %s (%s, %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(newBenchCommand())
	root.AddCommand(newStatsCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newBenchCommand() *cobra.Command {
	flags := &benchFlags{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark pooled allocation against direct allocation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveBenchConfig(cmd, flags)
			if err != nil {
				return err
			}
			return runBench(cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "YAML bench config file")
	cmd.Flags().IntVarP(&flags.iterations, "iterations", "n", 100000, "Acquire/release cycles to run")
	cmd.Flags().IntVar(&flags.payloadSize, "payload-size", 1024, "Message payload size in bytes")
	cmd.Flags().IntVar(&flags.warmup, "warmup", 0, "Instances released into the pool before timing")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Run a short pooling scenario and dump pool statistics as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

// resolveBenchConfig layers precedence: defaults, then the config file, then
// explicit command-line flags.
func resolveBenchConfig(cmd *cobra.Command, flags *benchFlags) (*config.BenchConfig, error) {
	cfg := config.DefaultBenchConfig()

	if flags.configPath != "" {
		if err := config.Load(flags.configPath, cfg); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = flags.iterations
	}
	if cmd.Flags().Changed("payload-size") {
		cfg.PayloadSize = flags.payloadSize
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup = flags.warmup
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// benchReport is the JSON report printed after a bench run.
type benchReport struct {
	Iterations  int           `json:"iterations"`
	PayloadSize int           `json:"payload_size"`
	Warmup      int           `json:"warmup"`
	PooledTotal time.Duration `json:"pooled_total_ns"`
	PooledPerOp int64         `json:"pooled_ns_per_op"`
	DirectTotal time.Duration `json:"direct_total_ns"`
	DirectPerOp int64         `json:"direct_ns_per_op"`
	PoolStats   pool.Stats    `json:"pool_stats"`
}

func runBench(cfg *config.BenchConfig) error {
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Encoding: "console"}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	collector := metrics.NewCollector()
	reg := registry.New(registry.WithLogger(logger.Get()), registry.WithInstrument(collector))
	registry.Register(reg, message.NewFactory(cfg.PayloadSize))

	p, _ := registry.PoolOf[*message.Message](reg)

	ctx := context.WithValue(context.Background(), logger.ScenarioKey, "bench")
	ctx = context.WithValue(ctx, logger.PoolKey, p.Name())
	log := logger.WithContext(ctx)

	// Warm the free list through the pool itself so every pooled instance
	// carries its back-reference.
	if cfg.Warmup > 0 {
		held := make([]*message.Message, 0, cfg.Warmup)
		for i := 0; i < cfg.Warmup; i++ {
			held = append(held, p.Acquire())
		}
		for _, m := range held {
			p.Release(m)
		}
	}

	payload := make([]byte, cfg.PayloadSize)

	log.Info("starting bench",
		zap.Int("iterations", cfg.Iterations),
		zap.Int("payload_size", cfg.PayloadSize),
		zap.Int("warmup", cfg.Warmup))

	pooledStart := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		m, err := registry.CreateInstance[*message.Message](reg)
		if err != nil {
			return err
		}
		m.Initialize()
		m.Payload = append(m.Payload, payload...)
		m.SetHeader("iteration", "bench")
		m.ReleaseToPool()
	}
	pooledTotal := time.Since(pooledStart)

	directStart := time.Now()
	create := message.NewFactory(cfg.PayloadSize)
	for i := 0; i < cfg.Iterations; i++ {
		m := create()
		m.Initialize()
		m.Payload = append(m.Payload, payload...)
		m.SetHeader("iteration", "bench")
	}
	directTotal := time.Since(directStart)

	log.Info("bench complete",
		zap.Duration("pooled_total", pooledTotal),
		zap.Duration("direct_total", directTotal))

	report := benchReport{
		Iterations:  cfg.Iterations,
		PayloadSize: cfg.PayloadSize,
		Warmup:      cfg.Warmup,
		PooledTotal: pooledTotal,
		PooledPerOp: pooledTotal.Nanoseconds() / int64(cfg.Iterations),
		DirectTotal: directTotal,
		DirectPerOp: directTotal.Nanoseconds() / int64(cfg.Iterations),
		PoolStats:   p.Stats(),
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// runStats walks a small fixed scenario and prints the resulting pool
// statistics, exercising manufacture, reuse, and self-release.
func runStats() error {
	reg := registry.New()
	registry.Register(reg, message.NewFactory(256))

	held := make([]*message.Message, 0, 8)
	for i := 0; i < 8; i++ {
		m, err := registry.CreateInstance[*message.Message](reg)
		if err != nil {
			return err
		}
		m.Initialize()
		held = append(held, m)
	}
	for _, m := range held {
		m.ReleaseToPool()
	}
	for i := 0; i < 4; i++ {
		if _, err := registry.CreateInstance[*message.Message](reg); err != nil {
			return err
		}
	}

	p, ok := registry.PoolOf[*message.Message](reg)
	if !ok {
		return fmt.Errorf("message pool missing from registry")
	}

	ctx := context.WithValue(context.Background(), logger.ScenarioKey, "stats")
	ctx = context.WithValue(ctx, logger.TypeKey, p.Name())
	logger.WithContext(ctx).Info("scenario complete",
		zap.Int("available", p.AvailableCount()))

	out, err := json.MarshalIndent(map[string]pool.Stats{p.Name(): p.Stats()}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
