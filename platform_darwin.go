//go:build darwin

package trash

import (
	"github.com/babarot/trash/internal/trash/core"
	"github.com/babarot/trash/internal/trash/finder"
)

func newStorage(cfg core.Config) (core.Storage, error) {
	return finder.NewStorage(cfg)
}
