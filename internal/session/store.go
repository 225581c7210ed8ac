// Package session owns the client-side authentication state: the durable
// token/profile slots and the single in-memory owner of the live session.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/skinstore/internal/models"
)

// Slot names mirror the keys the web client kept in local storage.
const (
	slotToken = "sessionToken"
	slotUser  = "user"
)

type slot struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (slot) TableName() string { return "session_slots" }

// Store persists the current session across process restarts in a small
// SQLite file, one row per slot.
type Store struct {
	DB *gorm.DB
}

// Open opens (or creates) the session database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot open session db: %w", err)
	}
	if err := db.AutoMigrate(&slot{}); err != nil {
		return nil, fmt.Errorf("cannot migrate session db: %w", err)
	}
	return &Store{DB: db}, nil
}

// Save overwrites both slots with the given token and user in one
// transaction. If the user cannot be serialized the previous state is left
// untouched.
func (s *Store) Save(token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("cannot serialize user: %w", err)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, sl := range []slot{
			{Key: slotToken, Value: token},
			{Key: slotUser, Value: string(data)},
		} {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&sl).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads both slots. A missing token slot yields an empty token; a
// missing or unparseable user slot yields a nil user, never an error. The
// token found alongside a corrupt user is still returned, so the caller is
// the one to decide the half-session is invalid.
func (s *Store) Load() (string, *models.User, error) {
	token := ""
	var sl slot
	err := s.DB.Where("key = ?", slotToken).First(&sl).Error
	switch {
	case err == nil:
		token = sl.Value
	case err != gorm.ErrRecordNotFound:
		return "", nil, fmt.Errorf("cannot read session db: %w", err)
	}

	var user *models.User
	err = s.DB.Where("key = ?", slotUser).First(&sl).Error
	switch {
	case err == nil:
		// A "null" payload decodes to a nil user, same as a corrupt one.
		if err := json.Unmarshal([]byte(sl.Value), &user); err != nil {
			user = nil
		}
	case err != gorm.ErrRecordNotFound:
		return "", nil, fmt.Errorf("cannot read session db: %w", err)
	}

	return token, user, nil
}

// Clear removes both slots. Clearing an already-empty store is fine.
func (s *Store) Clear() error {
	return s.DB.Where("key IN ?", []string{slotToken, slotUser}).Delete(&slot{}).Error
}
