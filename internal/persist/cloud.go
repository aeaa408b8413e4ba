package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// CloudSync pushes and pulls the encrypted blob to a user-configured
// endpoint. The sync credential is its own secret, deliberately separate
// from the AI API key: rotating one never invalidates the other.
type CloudSync struct {
	endpoint   string
	credential string
	client     *http.Client
	logger     *slog.Logger
}

func NewCloudSync(endpoint, credential string, logger *slog.Logger) *CloudSync {
	return &CloudSync{
		endpoint:   endpoint,
		credential: credential,
		client:     &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// Enabled reports whether a sync endpoint is configured.
func (c *CloudSync) Enabled() bool {
	return c.endpoint != "" && c.credential != ""
}

// Push uploads the state, encrypted with the sync credential. The remote
// only ever sees ciphertext.
func (c *CloudSync) Push(ctx context.Context, state *models.AppState) error {
	if !c.Enabled() {
		return &domain.ValidationError{Message: "cloud sync is not configured"}
	}
	plaintext, err := json.Marshal(state)
	if err != nil {
		return &domain.PersistenceError{Message: "encode state: " + err.Error()}
	}
	blob, err := encryptBlob(c.credential, plaintext)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.endpoint, bytes.NewReader(blob))
	if err != nil {
		return &domain.RequestError{Message: "build sync request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.RequestError{Message: "sync push: " + err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RequestError{Message: fmt.Sprintf("sync push: status %d", resp.StatusCode)}
	}
	c.logger.Info("state pushed to sync endpoint", "bytes", len(blob))
	return nil
}

// Pull downloads and decrypts the remote blob.
func (c *CloudSync) Pull(ctx context.Context) (*models.AppState, error) {
	if !c.Enabled() {
		return nil, &domain.ValidationError{Message: "cloud sync is not configured"}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &domain.RequestError{Message: "build sync request: " + err.Error()}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &domain.RequestError{Message: "sync pull: " + err.Error()}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, &domain.NotFoundError{Message: "no state at sync endpoint"}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.RequestError{Message: fmt.Sprintf("sync pull: status %d", resp.StatusCode)}
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RequestError{Message: "read sync response: " + err.Error()}
	}

	plaintext, err := decryptBlob(c.credential, blob)
	if err != nil {
		return nil, err
	}
	state := &models.AppState{}
	if err := json.Unmarshal(plaintext, state); err != nil {
		return nil, &domain.PersistenceError{Message: "decode synced state: " + err.Error()}
	}
	state.Normalize()
	return state, nil
}
