package api

import (
	"context"
	"time"

	"github.com/linesmerrill/scammer-blacklist/models"
)

// APITimeout is the default timeout for registry API calls
var APITimeout = 10 * time.Second

// WithAPITimeout creates a context with the registry API timeout
func WithAPITimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, APITimeout)
}

// Viewer is the signed in visitor of a request
type Viewer struct {
	User  models.User
	Token string
}

type viewerKey struct{}

// WithViewer stores the viewer in the context
func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// ViewerFromContext returns the signed in visitor, if any
func ViewerFromContext(ctx context.Context) (*Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(*Viewer)
	return v, ok && v != nil && v.Token != ""
}
