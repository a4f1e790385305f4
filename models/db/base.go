package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate ид генерируется на стороне сервиса, чтобы модель работала и на postgres, и на sqlite
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Models таблицы в порядке создания
func Models() []any {
	return []any{
		&Question{},
		&Source{},
		&Prompt{},
		&TestRun{},
		&RunResult{},
	}
}
