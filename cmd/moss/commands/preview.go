package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/moss/internal/metrics"
	"git.home.luguber.info/inful/moss/internal/preview"
	"git.home.luguber.info/inful/moss/internal/site"
)

// PreviewCmd implements the 'preview' command: generate, then serve the
// output directory until interrupted.
type PreviewCmd struct {
	Folder     string `arg:"" help:"Source folder" default:"." type:"path"`
	Host       string `help:"Interface to listen on" default:"127.0.0.1"`
	Port       int    `short:"p" help:"Port to listen on (defaults to preview.port from config)"`
	NoGenerate bool   `name:"no-generate" help:"Serve the existing output without regenerating"`
}

func (p *PreviewCmd) Run(global *Global, root *CLI) error {
	cfg := root.settings()

	var reg *prom.Registry
	if cfg.Preview.MetricsEnabled() {
		reg = prom.NewRegistry()
	}

	gen := site.NewGenerator(p.Folder).SetReport(cfg.Build.ReportEnabled())
	if reg != nil {
		gen.SetRecorder(metrics.NewPrometheusRecorder(reg))
	}
	if !p.NoGenerate {
		res, err := gen.GenerateSite()
		if err != nil {
			return err
		}
		printResult(global.out(), res)
	}

	port := p.Port
	if port == 0 {
		port = cfg.Preview.Port
	}
	srv, err := preview.New(gen.OutputPath(), preview.Options{
		Host:     p.Host,
		Port:     port,
		Registry: reg,
		Logger:   slog.Default(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	slog.Info("Preview available", slog.String("url", "http://"+srv.Addr()+"/"))
	return srv.ListenAndServe(ctx)
}
