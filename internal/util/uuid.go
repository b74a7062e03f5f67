package util

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// ShortUUID generates the opaque 22-symbol id used for every stored entity.
func ShortUUID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:])
}
