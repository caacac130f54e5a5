package pdf

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carbex/internal/config"
)

// Renderer is an HTML to PDF engine that owns releasable resources.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// NewRenderer builds the engine selected by cfg.Engine.
func NewRenderer(cfg config.PDFConfig, logger *zap.Logger) (Renderer, error) {
	switch cfg.Engine {
	case "gotenberg":
		return NewGotenbergClient(cfg.GotenbergURL, cfg.RenderTimeout), nil
	case "chromium":
		return NewChromiumRenderer(cfg.ChromiumBin, logger), nil
	default:
		return nil, fmt.Errorf("pdf: unsupported engine %q", cfg.Engine)
	}
}
