package models

import "time"

// Session is one backing row for the cookie session store. ID is the opaque
// session identifier issued to the browser; Data is the encoded session blob.
type Session struct {
	ID        string    `gorm:"size:64;primaryKey"`
	Data      []byte    `gorm:"type:bytea"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
