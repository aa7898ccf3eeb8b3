// Package model holds the records the store persists.
package model

import (
	"time"

	"github.com/sells-group/asselect/internal/settings"
)

// Profile is a named, saved set of conversion settings.
type Profile struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Settings  settings.Settings `json:"settings"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
