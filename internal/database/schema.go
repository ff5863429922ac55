package database

import "time"

// ChatMessage is one persisted conversation turn. Rows for a session are
// ordered by their autoincrement id, which reflects insert order.
type ChatMessage struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index;size:255;not null"`
	Role      string `gorm:"size:16;not null"`
	Content   string `gorm:"not null"`
	CreatedAt time.Time
}
