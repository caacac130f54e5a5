package port

import "context"

// PDFRenderer converts a standalone HTML document into PDF bytes.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
	Ping(ctx context.Context) error
}
