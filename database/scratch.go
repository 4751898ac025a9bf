package database

import (
	"database/sql"
	"errors"
	"log"
)

// SQLiteScratch scratch-хранилище поверх базы магазина. Реализует
// контракт bridge.Scratch: ошибки записи подавляются, хранилище
// работает по принципу best-effort.
type SQLiteScratch struct {
	db *DB
}

// NewSQLiteScratch создает scratch-хранилище
func NewSQLiteScratch(db *DB) *SQLiteScratch {
	return &SQLiteScratch{db: db}
}

// Get возвращает значение по ключу
func (s *SQLiteScratch) Get(key string) (string, bool) {
	var value string
	err := s.db.conn.QueryRow(`SELECT value FROM scratch_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Scratch] чтение ключа %q не удалось: %v", key, err)
		}
		return "", false
	}
	return value, true
}

// Set сохраняет значение по ключу
func (s *SQLiteScratch) Set(key string, value string) {
	_, err := s.db.conn.Exec(`
		INSERT INTO scratch_store (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		log.Printf("[Scratch] запись ключа %q не удалась: %v", key, err)
	}
}
