package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nevindra/fiscus"
	"github.com/nevindra/fiscus/extraction"
	"github.com/nevindra/fiscus/internal/config"
	"github.com/nevindra/fiscus/observer"
	"github.com/nevindra/fiscus/provider/openaicompat"
)

// runtime bundles what every LLM-backed command needs: the loaded config,
// the provider (observer-wrapped when enabled), and the observer shutdown.
type runtime struct {
	cfg      config.Config
	provider fiscus.Provider
	shutdown func(context.Context) error
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg := config.Load(configPath)

	var popts []openaicompat.ProviderOption
	if cfg.LLM.Temperature != nil {
		popts = append(popts, openaicompat.WithOptions(openaicompat.WithTemperature(*cfg.LLM.Temperature)))
	}
	var provider fiscus.Provider = openaicompat.NewProvider(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, popts...)

	provider = fiscus.WithRetry(provider, fiscus.RetryLogger(newLogger()))
	if cfg.LLM.RPM > 0 || cfg.LLM.TPM > 0 {
		var lopts []fiscus.RateLimitOption
		if cfg.LLM.RPM > 0 {
			lopts = append(lopts, fiscus.RPM(cfg.LLM.RPM))
		}
		if cfg.LLM.TPM > 0 {
			lopts = append(lopts, fiscus.TPM(cfg.LLM.TPM))
		}
		provider = fiscus.WithRateLimit(provider, lopts...)
	}

	rt := &runtime{cfg: cfg, provider: provider}
	if cfg.Observer.Enabled {
		pricing := make(map[string]observer.ModelPricing, len(cfg.Observer.Pricing))
		for model, p := range cfg.Observer.Pricing {
			pricing[model] = observer.ModelPricing{InputPerMillion: p.Input, OutputPerMillion: p.Output}
		}

		inst, shutdown, err := observer.Init(ctx, observer.Config{
			Endpoint: cfg.Observer.Endpoint,
			Insecure: cfg.Observer.Insecure,
			Pricing:  pricing,
		})
		if err != nil {
			return nil, fmt.Errorf("observer init: %w", err)
		}
		rt.provider = observer.WrapProvider(provider, cfg.LLM.Model, inst)
		rt.shutdown = shutdown
	}
	return rt, nil
}

// close flushes pending telemetry. It takes its own context so a cancelled
// command context does not cut the flush short.
func (r *runtime) close(ctx context.Context) {
	if r.shutdown != nil {
		_ = r.shutdown(ctx)
	}
}

// extractionOptions builds workflow options from config, progress going to w.
func (r *runtime) extractionOptions(w io.Writer) extraction.Options {
	return extraction.Options{
		Provider:   r.provider,
		Method:     extraction.Method(r.cfg.Extraction.Method),
		MaxRetries: r.cfg.Extraction.MaxRetries,
		Categories: r.cfg.Extraction.Categories,
		Logger:     newLogger(),
		OnPage:     pageReporter(w),
	}
}

// newLogger returns a debug logger on stderr when --verbose is set, nil
// otherwise (the workflow then falls back to its discard default).
func newLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
