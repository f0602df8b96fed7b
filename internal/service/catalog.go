// Package service resolves where the catalog comes from. The CLI and the
// TUI both go through it so they agree on source precedence.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/api"
	"github.com/alignedempire/aligned/internal/config"
	"github.com/alignedempire/aligned/internal/content"
	"github.com/alignedempire/aligned/internal/db"
)

// RemoteTimeout bounds a remote catalog fetch.
const RemoteTimeout = 15 * time.Second

// Kind names a catalog source.
type Kind string

const (
	KindRemote   Kind = "remote"
	KindDatabase Kind = "database"
	KindFile     Kind = "file"
	KindEmbedded Kind = "embedded"
)

// Source describes where a catalog was loaded from.
type Source struct {
	Kind     Kind
	Location string // URL or path; empty for the embedded catalog
}

func (s Source) String() string {
	if s.Location == "" {
		return string(s.Kind)
	}
	return s.Location
}

// Resolve picks the source configured in c: remote host, then SQLite,
// then a YAML file, then the embedded default.
func Resolve(c *config.Config) Source {
	switch {
	case c.HasRemote():
		return Source{Kind: KindRemote, Location: c.Content.RemoteURL}
	case c.Content.DBPath != "":
		return Source{Kind: KindDatabase, Location: c.Content.DBPath}
	case c.Content.CatalogPath != "":
		return Source{Kind: KindFile, Location: c.Content.CatalogPath}
	}
	return Source{Kind: KindEmbedded}
}

// CatalogService loads catalogs for one configuration.
type CatalogService struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCatalogService creates a service. A nil logger discards output.
func NewCatalogService(cfg *config.Config, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{cfg: cfg, logger: logger}
}

// Load reads the catalog from the configured source.
func (s *CatalogService) Load(ctx context.Context) (*content.Catalog, Source, error) {
	src := Resolve(s.cfg)

	var (
		cat *content.Catalog
		err error
	)
	switch src.Kind {
	case KindRemote:
		cat, err = s.loadRemote(ctx, src.Location)
	case KindDatabase:
		cat, err = loadDatabase(ctx, src.Location)
	case KindFile:
		cat, err = content.LoadFile(src.Location)
	default:
		cat, err = content.Default()
	}
	if err != nil {
		s.logger.Warn("catalog load failed", zap.String("source", src.String()), zap.Error(err))
		return nil, src, err
	}

	s.logger.Info("catalog loaded",
		zap.String("kind", string(src.Kind)),
		zap.String("source", src.String()),
		zap.Int("posts", len(cat.Posts)))
	return cat, src, nil
}

func (s *CatalogService) loadRemote(ctx context.Context, baseURL string) (*content.Catalog, error) {
	client, err := api.NewClient(baseURL, api.WithAPIKey(s.cfg.Content.RemoteKey))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, RemoteTimeout)
	defer cancel()

	cat, err := client.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", client.BaseURL(), err)
	}
	return cat, nil
}

func loadDatabase(ctx context.Context, path string) (*content.Catalog, error) {
	// Opening would create the file
	if _, err := os.Stat(path); err != nil {
		return nil, NotSeeded(path)
	}

	store, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	cat, err := store.LoadCatalog(ctx)
	if errors.Is(err, db.ErrNotSeeded) {
		return nil, NotSeeded(path)
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// NotSeeded wraps db.ErrNotSeeded with the command that fixes it.
func NotSeeded(path string) error {
	return fmt.Errorf("%s: %w (run 'aligned catalog seed --out %s')", path, db.ErrNotSeeded, path)
}

// Publish writes cat into the SQLite database at path, creating the schema
// when needed, and returns the number of stored posts.
func Publish(ctx context.Context, path string, cat *content.Catalog) (int, error) {
	store, err := db.Open(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return 0, err
	}
	if err := store.Seed(ctx, cat); err != nil {
		return 0, err
	}
	return store.CountPosts(ctx)
}
