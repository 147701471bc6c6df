// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/runoshun/teamtasks/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir        string // Path to the .teamtasks directory
	ConfigPath     string // Config file to create when missing (optional)
	ConfigTemplate string // Content written to ConfigPath
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	DataDir            string // Path to the data directory
	AlreadyInitialized bool   // True if the store already existed
	ConfigCreated      bool   // True if a config file was written
}

// InitStore prepares the data directory and the entity store.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute creates the data and log directories, writes the default config
// when none exists and initializes the store. Running it twice is safe.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	alreadyInitialized := uc.storeInit.IsInitialized()

	logsDir := filepath.Join(in.DataDir, domain.LogsDirName)
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	configCreated := false
	if in.ConfigPath != "" && in.ConfigTemplate != "" {
		_, err := os.Stat(in.ConfigPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if err := os.WriteFile(in.ConfigPath, []byte(in.ConfigTemplate), 0o600); err != nil {
				return nil, fmt.Errorf("write config: %w", err)
			}
			configCreated = true
		case err != nil:
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return &InitStoreOutput{
		DataDir:            in.DataDir,
		AlreadyInitialized: alreadyInitialized,
		ConfigCreated:      configCreated,
	}, nil
}
