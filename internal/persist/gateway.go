package persist

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// Gateway owns the one encrypted state blob on disk. Save is
// fire-and-forget so mutations never block on I/O; failures are logged
// and the in-memory state stays intact for retry or manual export.
type Gateway struct {
	path       string
	passphrase string
	logger     *slog.Logger

	// mu serializes writes; saves carry full snapshots so the last writer
	// wins.
	mu sync.Mutex
}

func NewGateway(path, passphrase string, logger *slog.Logger) *Gateway {
	return &Gateway{path: path, passphrase: passphrase, logger: logger}
}

// Save implements the store's Saver callback.
func (g *Gateway) Save(state *models.AppState) {
	go func() {
		if err := g.Write(state); err != nil {
			g.logger.Error("state save failed", "error", err)
		}
	}()
}

// Write encrypts and atomically replaces the blob: a crash mid-write
// leaves the previous blob intact, never a half-written one.
func (g *Gateway) Write(state *models.AppState) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	plaintext, err := json.Marshal(state)
	if err != nil {
		return &domain.PersistenceError{Message: "encode state: " + err.Error()}
	}
	blob, err := encryptBlob(g.passphrase, plaintext)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0o700); err != nil {
		return &domain.PersistenceError{Message: "create state dir: " + err.Error()}
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return &domain.PersistenceError{Message: "write state: " + err.Error()}
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return &domain.PersistenceError{Message: "commit state: " + err.Error()}
	}
	return nil
}

// Load reads and decrypts the blob. A missing file is a fresh
// installation, not an error: an empty normalized state comes back.
func (g *Gateway) Load() (*models.AppState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	blob, err := os.ReadFile(g.path)
	if errors.Is(err, fs.ErrNotExist) {
		state := &models.AppState{}
		state.Normalize()
		return state, nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Message: "read state: " + err.Error()}
	}

	plaintext, err := decryptBlob(g.passphrase, blob)
	if err != nil {
		return nil, err
	}
	state := &models.AppState{}
	if err := json.Unmarshal(plaintext, state); err != nil {
		return nil, &domain.PersistenceError{Message: "decode state: " + err.Error()}
	}
	state.Normalize()
	return state, nil
}
