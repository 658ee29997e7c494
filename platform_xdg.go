//go:build !windows && !darwin

package trash

import (
	"github.com/babarot/trash/internal/trash/core"
	"github.com/babarot/trash/internal/trash/xdg"
)

func newStorage(cfg core.Config) (core.Storage, error) {
	return xdg.NewStorage(cfg)
}
