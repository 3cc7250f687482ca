package system

import (
	"errors"
	"fmt"
	"slices"

	"github.com/julianstephens/momentum/internal/backup"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/constants"
)

type InitCmd struct {
	Force bool `help:"Reset existing data to the defaults (SQLite stores are backed up first)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	backend := ctx.Storage.Backend
	if backend == nil {
		return errors.New("no durable store is open; check --config or drop --no-persist")
	}

	keys, err := backend.Keys()
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}
	initialized := slices.ContainsFunc(keys, func(k string) bool {
		return slices.Contains(constants.PersistedKeys, k)
	})

	if initialized && !c.Force {
		ctx.Printf("momentum storage is already initialized at: %s\n", backend.Location())
		ctx.Println("Use --force to reset it to the defaults.")
		return nil
	}

	if initialized {
		if path, ok := ctx.SQLitePath(); ok {
			saved, err := backup.NewManager(path).Create()
			if err != nil {
				return fmt.Errorf("failed to back up existing data: %w", err)
			}
			ctx.Printf("Backed up existing data to: %s\n", saved)
		}
	}

	ctx.Store.Reset()
	ctx.Printf("✓ Initialized momentum storage at: %s\n", backend.Location())
	if !ctx.Storage.Durable() {
		ctx.Println("⚠ This store lives in memory and is discarded when the process exits.")
	}
	return nil
}
