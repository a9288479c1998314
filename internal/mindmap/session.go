// Package mindmap ties a scene, its gesture controller and a persistence
// store into one editing session.
package mindmap

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bubblemap/internal/codec"
	"bubblemap/internal/gesture"
	"bubblemap/internal/palette"
	"bubblemap/internal/render"
	"bubblemap/internal/scene"
	"bubblemap/internal/store"
)

var ErrPersistenceUnavailable = errors.New("persistence unavailable")

// Store persists one serialized document.
type Store interface {
	Save(ctx context.Context, doc []byte) error
	Load(ctx context.Context) ([]byte, error)
}

type Option func(*Session)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTheme(theme palette.Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

type Session struct {
	Model      *scene.Model
	Controller *gesture.Controller

	store  Store
	theme  palette.Theme
	logger *zap.Logger
}

func New(model *scene.Model, controller *gesture.Controller, st Store, opts ...Option) *Session {
	s := &Session{
		Model:      model,
		Controller: controller,
		store:      st,
		theme:      palette.ThemeNamed(""),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Dirty() bool {
	return s.Model.Dirty()
}

func (s *Session) Theme() palette.Theme {
	return s.theme
}

func (s *Session) SetTheme(theme palette.Theme) {
	s.theme = theme
}

// Save stores the current document and marks the scene clean.
func (s *Session) Save(ctx context.Context) error {
	doc, err := codec.Marshal(s.Model)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		s.logger.Error("save failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}
	s.Model.MarkClean()
	s.logger.Debug("saved", zap.Int("nodes", s.Model.Len()), zap.Int("edges", s.Model.EdgeCount()))
	return nil
}

// Load replaces the scene with the stored document. It reports false when
// the store holds nothing. A malformed document leaves the scene untouched.
func (s *Session) Load(ctx context.Context) (bool, error) {
	doc, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNoDocument) {
		return false, nil
	}
	if err != nil {
		s.logger.Error("load failed", zap.Error(err))
		return false, fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
	}

	s.Controller.Cancel()
	if _, err := codec.Unmarshal(doc, s.Model); err != nil {
		return false, err
	}
	s.Model.MarkClean()
	return true, nil
}

// Reset drops any gesture in progress and empties the scene.
func (s *Session) Reset() {
	s.Controller.Cancel()
	s.Model.Clear()
}

func (s *Session) ExportJSON() ([]byte, error) {
	return codec.MarshalIndent(s.Model)
}

// ImportJSON replaces the scene with data. The returned count is the number
// of connections dropped for naming unknown bubbles.
func (s *Session) ImportJSON(data []byte) (int, error) {
	s.Controller.Cancel()
	return codec.Unmarshal(data, s.Model)
}

// ExportPNG paints the whole scene into a PNG file at path.
func (s *Session) ExportPNG(path string) error {
	img, err := render.NewPNG(s.theme)
	if err != nil {
		return err
	}
	s.Model.Replay(img)
	if err := img.Export(path); err != nil {
		return err
	}
	s.logger.Info("exported image", zap.String("path", path))
	return nil
}
