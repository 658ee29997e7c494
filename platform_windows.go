//go:build windows

package trash

import (
	"github.com/babarot/trash/internal/trash/core"
	"github.com/babarot/trash/internal/trash/shell"
)

func newStorage(cfg core.Config) (core.Storage, error) {
	return shell.NewStorage(cfg)
}
