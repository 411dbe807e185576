package uploads

import (
	"context"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
)

const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// NewStore builds the store selected by UPLOAD_BACKEND.
func NewStore(ctx context.Context, c map[string]string) (Store, error) {
	switch backend := config.GetString(c, "UPLOAD_BACKEND", BackendLocal); backend {
	case BackendLocal:
		return NewLocalStore(
			config.GetString(c, "UPLOAD_DIR", "uploads"),
			config.GetString(c, "UPLOAD_URL_PREFIX", "/uploads"),
		)
	case BackendS3:
		return NewS3StoreFromConfig(ctx, c)
	default:
		return nil, errs.NewConfigError("UPLOAD_BACKEND="+backend, nil)
	}
}
