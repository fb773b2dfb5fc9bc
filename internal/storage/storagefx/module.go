package storagefx

import (
	"context"
	"fmt"

	"github.com/codesense/codesense/internal/config/configfx"
	"github.com/codesense/codesense/internal/storage"
	"github.com/codesense/codesense/internal/storage/sqlite"
	"go.uber.org/fx"
)

// Params represents dependencies for storage components
type Params struct {
	fx.In

	Config *configfx.Config
}

// NewStore creates the sqlite-backed chunk and corpus store
func NewStore(params Params) (storage.Store, error) {
	if params.Config.DBPath == "" {
		return nil, fmt.Errorf("database path must be specified")
	}
	return sqlite.New(params.Config.DBPath)
}

// Module provides storage components and closes the store on shutdown
var Module = fx.Module("storage",
	fx.Provide(NewStore),
	fx.Invoke(func(lc fx.Lifecycle, store storage.Store) {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return store.Close()
			},
		})
	}),
)
