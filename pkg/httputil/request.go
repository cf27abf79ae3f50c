package httputil

import (
	"encoding/json"
	"net/http"
)

// maxJSONBody bounds request bodies parsed as JSON.
const maxJSONBody = 1 << 20

// ParseJSONOrError decodes the request body into dst, writing a 400
// response and returning false on failure.
func ParseJSONOrError(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, "invalid JSON body")
		return false
	}
	return true
}
