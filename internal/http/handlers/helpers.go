package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"jobpulse/internal/common"
)

func decodeJSON(r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath pulls the UUID out of the given path segment, counting from the
// start of the trimmed path: /postings/{id}/publish has the id at index 1.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index >= len(parts) {
		return common.NilUUID, common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	id, err := common.ParseUUID(parts[index])
	if err != nil {
		return common.NilUUID, common.NewError(common.CodeValidation, "invalid id", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "missing user identity", nil)
}
