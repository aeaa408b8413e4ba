package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodySize caps request bodies; a full manuscript fits comfortably.
const maxBodySize = 10 << 20

// ParseJSON decodes the request body into dest. Unknown fields pass
// through so older clients keep working after the API grows.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
