// Command gnssiq-synth synthesizes a baseband complex I/Q sample stream
// from a scenario descriptor: one or more GNSS signals, each with
// pseudorange/Doppler/power/data-symbol profiles, summed and decimated
// by a Composite and written to a raw binary file.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lestrrat-go/strftime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/kd9wcc/gnssiq/codes"
	"github.com/kd9wcc/gnssiq/composite"
	"github.com/kd9wcc/gnssiq/iqwriter"
	"github.com/kd9wcc/gnssiq/metrics"
	"github.com/kd9wcc/gnssiq/modsignal"
	"github.com/kd9wcc/gnssiq/noise"
	"github.com/kd9wcc/gnssiq/pp"
	"github.com/kd9wcc/gnssiq/ppio"
	"github.com/kd9wcc/gnssiq/pseudorange"
	"github.com/kd9wcc/gnssiq/refsignal"
	"github.com/kd9wcc/gnssiq/scenario"
	"github.com/kd9wcc/gnssiq/source"
)

// SpeedOfLight is the value used to invert pseudorange PPs into
// signal-time-to-true-time warps.
const SpeedOfLight = 299792458.0

// chunkSeconds is the signal-time duration requested per Composite pull.
const chunkSeconds = 0.02

var logger = log.Default().WithPrefix("gnssiq-synth")

func main() {
	var (
		configPath  = pflag.StringP("config", "c", "", "YAML configuration file.")
		scenarioArg = pflag.StringP("scenario", "s", "", "Scenario descriptor JSON file.")
		outputArg   = pflag.StringP("output", "o", "", "Output file path (strftime-templated).")
		outputRate  = pflag.Float64("output-rate", 0, "Output sample rate in Hz.")
		duration    = pflag.Float64("duration", 0, "Signal-time duration to synthesize, in seconds.")
		k           = pflag.Int("oversample", 0, "Composite oversample ratio K.")
		filterOrder = pflag.Int("filter-order", 0, "Anti-alias FIR filter order.")
		alpha       = pflag.Float64("alpha", 0, "Anti-alias FIR cutoff scale, in (0,1].")
		format      = pflag.String("format", "", "Output sample format: int16 or float32.")
		scaleDB     = pflag.Float64("scale-db", 0, "Full-scale headroom in dB below peak (applied to both output formats).")
		compress    = pflag.Bool("compress", false, "zstd-compress the output stream.")
		metricsAddr = pflag.String("metrics-addr", "", "Prometheus metrics listen address, e.g. :9090.")
		seed        = pflag.Uint64("seed", 0, "Noise generation seed.")
		verbose     = pflag.BoolP("verbose", "v", false, "Enable debug logging.")
		version     = pflag.Bool("version", false, "Print version and exit.")
	)
	pflag.Parse()

	if *version {
		printVersion(*verbose)
		return
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := &Config{}
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("loading config", "err", err)
		}
		cfg = loaded
	}
	if *scenarioArg != "" {
		cfg.Scenario = *scenarioArg
	}
	if *outputArg != "" {
		cfg.Output = *outputArg
	}
	if *outputRate != 0 {
		cfg.OutputRate = *outputRate
	}
	if *duration != 0 {
		cfg.Duration = *duration
	}
	if *k != 0 {
		cfg.K = *k
	}
	if *filterOrder != 0 {
		cfg.FilterOrder = *filterOrder
	}
	if *alpha != 0 {
		cfg.Alpha = *alpha
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *scaleDB != 0 {
		cfg.ScaleDB = *scaleDB
	}
	if *compress {
		cfg.Compress = true
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		logger.Fatal(err)
	}

	runID := uuid.New()
	logger.Info("starting run", "run_id", runID, "scenario", cfg.Scenario)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, reg)
	}

	if err := run(cfg, runID, m); err != nil {
		logger.Fatal("run failed", "err", err)
	}
}

func serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server exited", "err", err)
	}
}

func run(cfg *Config, runID uuid.UUID, m *metrics.Metrics) error {
	desc, err := scenario.LoadFile(cfg.Scenario)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	comp, err := composite.New(composite.Config{
		OutputRate:  cfg.OutputRate,
		K:           cfg.K,
		FilterOrder: cfg.FilterOrder,
		Alpha:       cfg.Alpha,
	})
	if err != nil {
		return fmt.Errorf("constructing composite: %w", err)
	}

	rHi := cfg.OutputRate * float64(cfg.K)
	for i, sig := range desc.Signals {
		ms, fdmaHz, err := buildSignal(sig, rHi)
		if err != nil {
			return fmt.Errorf("signal %d (%s/%s): %w", i, sig.System, sig.Name, err)
		}
		comp.AddSignal(ms, fdmaHz)
		m.ActiveSignals.Inc()

		if sig.NoiseDensityFile != "" {
			noiseSig, err := buildNoiseSignal(sig.NoiseDensityFile, rHi, cfg.Seed+uint64(i)+1)
			if err != nil {
				return fmt.Errorf("signal %d (%s/%s) noise: %w", i, sig.System, sig.Name, err)
			}
			comp.AddSignal(noiseSig, sig.FDMAOffsetHz)
			m.ActiveSignals.Inc()
		}
	}

	outputPath, err := strftime.Format(cfg.Output, time.Now())
	if err != nil {
		return fmt.Errorf("formatting output path: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	fmtEnum := iqwriter.Int16
	if cfg.Format == "float32" {
		fmtEnum = iqwriter.Float32
	}
	writer, err := iqwriter.New(f, iqwriter.Config{
		Format:   fmtEnum,
		Scale:    iqwriter.ScaleFactor(cfg.ScaleDB),
		Compress: cfg.Compress,
	})
	if err != nil {
		return fmt.Errorf("constructing writer: %w", err)
	}
	defer writer.Close()

	elapsed := 0.0
	for elapsed < cfg.Duration {
		start := time.Now()
		res, err := comp.RequestSamples(chunkSeconds)
		if err != nil {
			return fmt.Errorf("requesting samples at t=%.3f: %w", elapsed, err)
		}
		m.RequestDuration.Observe(time.Since(start).Seconds())

		if err := writer.Write(res.Samples); err != nil {
			return fmt.Errorf("writing samples: %w", err)
		}
		m.SamplesWritten.Add(float64(len(res.Samples)))
		elapsed += chunkSeconds
	}

	logger.Info("run complete", "run_id", runID, "output", outputPath, "duration", cfg.Duration)
	return nil
}

// buildSignal constructs the full ModulatedSignal chain for one scenario
// signal entry: PRN code source, power/Doppler/pseudorange-derived-warp
// profiles. The reference signal is built without a data-symbol stream:
// the entry's data-symbol files are not read, so no data modulation is
// applied.
func buildSignal(sig scenario.Signal, rate float64) (*modsignal.ModulatedSignal, float64, error) {
	sys, err := systemFor(sig.System, sig.Name)
	if err != nil {
		return nil, 0, err
	}
	chips, err := codes.Chips(sys, sig.SignalParams.PRN)
	if err != nil {
		return nil, 0, err
	}

	chipSrc, err := source.NewRepeating(toComplex(chips), rate, 1, true)
	if err != nil {
		return nil, 0, err
	}

	rs := refsignal.New(chipSrc, nil)

	power, err := loadOptionalPP(sig.PowerFile)
	if err != nil {
		return nil, 0, err
	}
	doppler, err := loadOptionalPP(sig.DopplerFile)
	if err != nil {
		return nil, 0, err
	}

	pr, err := loadOptionalPP(sig.PseudorangeFile)
	if err != nil {
		return nil, 0, err
	}
	warpPoly := pr
	if pr != nil {
		warpPoly, err = pseudorange.Invert(pr, SpeedOfLight)
		if err != nil {
			return nil, 0, err
		}
	}

	ms := modsignal.New(rs, power, doppler, warpPoly, sig.CarrierPhase)
	return ms, sig.FDMAOffsetHz, nil
}

// buildNoiseSignal constructs a noise-only ModulatedSignal from a
// noise-density profile file, so it can be summed by the Composite
// alongside PRN-coded signals via the same Source interface.
func buildNoiseSignal(densityFile string, rate float64, seed uint64) (*modsignal.ModulatedSignal, error) {
	density, err := ppio.ReadFile(densityFile)
	if err != nil {
		return nil, err
	}
	wn, err := noise.New(rate, density, seed)
	if err != nil {
		return nil, err
	}
	return modsignal.New(wn, nil, nil, nil, 0), nil
}

func loadOptionalPP(path string) (*pp.Poly, error) {
	if path == "" {
		return nil, nil
	}
	return ppio.ReadFile(path)
}

func systemFor(system, name string) (codes.System, error) {
	switch {
	case system == "GPS" && name == "L1CA":
		return codes.GPSL1CA, nil
	case system == "GPS" && name == "L1C":
		return codes.GPSL1C, nil
	case system == "GPS" && name == "L5":
		return codes.GPSL5, nil
	case system == "Galileo":
		return codes.GalileoE1, nil
	case system == "GLONASS":
		return codes.GLONASSL1, nil
	default:
		return "", fmt.Errorf("unknown system/name %q/%q", system, name)
	}
}

func toComplex(chips []float64) []complex128 {
	out := make([]complex128, len(chips))
	for i, c := range chips {
		out[i] = complex(c, 0)
	}
	return out
}
