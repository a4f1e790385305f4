package sourcestore

import (
	"gorm.io/gorm"
	storeerrors "sarah-testing/lib/utils/store-errors"
	dbmodels "sarah-testing/models/db"
)

type Provider interface {
	Create(rec dbmodels.Source) (*dbmodels.Source, error)
	ListByQuestion(questionID string) ([]dbmodels.Source, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Source) (*dbmodels.Source, error) {
	err := i.db.Create(&rec).Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка добавления источника")
	}
	return &rec, nil
}

func (i impl) ListByQuestion(questionID string) ([]dbmodels.Source, error) {
	var list []dbmodels.Source
	err := i.db.Model(dbmodels.Source{}).
		Where("question_id = ?", questionID).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения источников вопроса")
	}
	return list, nil
}
