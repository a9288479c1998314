package cmd

import (
	"go.uber.org/zap"

	"bubblemap/internal/config"
	"bubblemap/internal/gesture"
	"bubblemap/internal/mindmap"
	"bubblemap/internal/palette"
	"bubblemap/internal/render"
	"bubblemap/internal/scene"
	"bubblemap/internal/store"
)

// app is everything a command needs: configuration, logger, store and a
// session drawing into a terminal canvas.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	backend store.Backend
	term    *render.Terminal
	session *mindmap.Session
}

func openApp(interactive bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if storeBackend != "" {
		cfg.Store.Backend = storeBackend
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	backend, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}

	theme := palette.ThemeNamed(cfg.UI.Theme)
	term := render.NewTerminal(theme)
	opts := []scene.Option{
		scene.WithZoomLimits(cfg.View.MinZoom, cfg.View.MaxZoom),
		scene.WithLogger(logger),
	}
	if interactive {
		opts = append(opts, scene.WithRenderer(term))
	}
	model := scene.New(opts...)
	ctrl := gesture.New(model,
		gesture.WithPreview(term),
		gesture.WithZoomStep(cfg.View.ZoomStep),
		gesture.WithLogger(logger),
	)

	logger.Debug("opened store", zap.String("backend", cfg.Store.Backend))
	return &app{
		cfg:     cfg,
		logger:  logger,
		backend: backend,
		term:    term,
		session: mindmap.New(model, ctrl, backend, mindmap.WithLogger(logger), mindmap.WithTheme(theme)),
	}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Error("closing store", zap.Error(err))
	}
	a.logger.Sync()
}
