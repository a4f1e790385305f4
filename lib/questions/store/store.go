package questionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	storeerrors "sarah-testing/lib/utils/store-errors"
	dbmodels "sarah-testing/models/db"
)

type Provider interface {
	Create(rec dbmodels.Question, sources []dbmodels.Source) (*dbmodels.Question, error)
	GetByID(id string) (*dbmodels.Question, error)
	List() ([]dbmodels.Question, error)
	FindByIDs(ids []string) ([]dbmodels.Question, error)
	Count() (int64, error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Question, sources []dbmodels.Source) (*dbmodels.Question, error) {
	rec.Sources = nil
	err := i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return err
		}
		for idx := range sources {
			sources[idx].ID = ""
			sources[idx].QuestionID = rec.ID
			if err := tx.Create(&sources[idx]).Error; err != nil {
				return errors.Wrapf(err, "источник %q", sources[idx].Title)
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка добавления вопроса")
	}
	rec.Sources = sources
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.Question, error) {
	var rec dbmodels.Question
	err := i.db.
		Preload("Sources", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at, id")
		}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeerrors.Classify(err, "ошибка получения вопроса")
	}
	return &rec, nil
}

func (i impl) List() ([]dbmodels.Question, error) {
	var list []dbmodels.Question
	err := i.db.Model(dbmodels.Question{}).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения списка вопросов")
	}
	return list, nil
}

func (i impl) FindByIDs(ids []string) ([]dbmodels.Question, error) {
	if len(ids) == 0 {
		return []dbmodels.Question{}, nil
	}
	var list []dbmodels.Question
	err := i.db.Model(dbmodels.Question{}).
		Where("id IN ?", ids).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения списка вопросов")
	}
	return list, nil
}

func (i impl) Count() (int64, error) {
	var rowCount int64
	err := i.db.Model(dbmodels.Question{}).Count(&rowCount).Error
	if err != nil {
		return 0, storeerrors.Classify(err, "ошибка получения количества вопросов")
	}
	return rowCount, nil
}

// Delete удаляет источники и вопрос одной транзакцией
func (i impl) Delete(id string) error {
	err := i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&dbmodels.Source{}).Error; err != nil {
			return errors.Wrap(err, "удаление источников")
		}
		res := tx.Where("id = ?", id).Delete(&dbmodels.Question{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storeerrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return storeerrors.Classify(err, "ошибка удаления вопроса")
	}
	return nil
}
