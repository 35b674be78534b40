package sessions

import (
	"errors"
	"log/slog"
	"time"

	"github.com/interviewmate/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage persists session records in PostgreSQL. It implements fiber.Storage
// so the session middleware survives restarts, the same way the session store
// backs onto the primary database.
type Storage struct {
	db   *gorm.DB
	done chan struct{}
}

func NewStorage(db *gorm.DB) *Storage {
	s := &Storage{db: db, done: make(chan struct{})}
	go s.gcLoop()
	return s
}

func (s *Storage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	var rec models.Session
	err := s.db.First(&rec, "id = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	return rec.Data, nil
}

func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if exp <= 0 {
		// Sessions without an explicit expiry still age out eventually.
		exp = 365 * 24 * time.Hour
	}
	rec := models.Session{ID: key, Data: val, ExpiresAt: time.Now().Add(exp)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(&rec).Error
}

func (s *Storage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.db.Delete(&models.Session{}, "id = ?", key).Error
}

func (s *Storage) Reset() error {
	return s.db.Exec("DELETE FROM sessions").Error
}

func (s *Storage) Close() error {
	close(s.done)
	return nil
}

func (s *Storage) gcLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
			if result.Error != nil {
				slog.Error("session cleanup failed", "error", result.Error)
			} else if result.RowsAffected > 0 {
				slog.Info("expired sessions removed", "count", result.RowsAffected)
			}
		case <-s.done:
			return
		}
	}
}
