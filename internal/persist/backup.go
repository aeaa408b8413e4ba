package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jvgags/Poe-Write/internal/domain"
	"github.com/jvgags/Poe-Write/internal/domain/models"
)

// BackupFilename returns the dated download name for a backup file.
func BackupFilename(now time.Time) string {
	return fmt.Sprintf("PoeWrite_Backup_%s.json", now.Format("2006-01-02"))
}

// ExportBackup renders the state as pretty, unencrypted JSON for the user
// to keep. The backup is the escape hatch when the encrypted blob or its
// passphrase is lost, so it stays plaintext on purpose.
func ExportBackup(state *models.AppState) ([]byte, error) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, &domain.PersistenceError{Message: "encode backup: " + err.Error()}
	}
	return data, nil
}

// ImportBackup parses a backup file into a normalized state, ready to
// replace the in-memory collections wholesale. Missing top-level keys
// default to empty collections or current settings.
func ImportBackup(data []byte) (*models.AppState, error) {
	state := &models.AppState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, &domain.ValidationError{Message: "invalid backup file: " + err.Error()}
	}
	state.Normalize()
	return state, nil
}
