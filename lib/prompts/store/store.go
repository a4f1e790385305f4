package promptstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	storeerrors "sarah-testing/lib/utils/store-errors"
	dbmodels "sarah-testing/models/db"
)

type Provider interface {
	Create(name, content string) (*dbmodels.Prompt, error)
	GetByID(id string) (*dbmodels.Prompt, error)
	List() ([]dbmodels.Prompt, error)
	ListVersions(name string) ([]dbmodels.Prompt, error)
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

// Create версия назначается как max(version)+1 среди промптов с тем же названием
func (i impl) Create(name, content string) (*dbmodels.Prompt, error) {
	rec := dbmodels.Prompt{
		Name:    name,
		Content: content,
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		err := tx.Model(dbmodels.Prompt{}).
			Select("COALESCE(MAX(version), 0)").
			Where("name = ?", name).
			Scan(&maxVersion).
			Error
		if err != nil {
			return errors.Wrap(err, "получение последней версии")
		}
		rec.Version = maxVersion + 1
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка добавления промпта")
	}
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.Prompt, error) {
	var rec dbmodels.Prompt
	err := i.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeerrors.Classify(err, "ошибка получения промпта")
	}
	return &rec, nil
}

func (i impl) List() ([]dbmodels.Prompt, error) {
	var list []dbmodels.Prompt
	err := i.db.Model(dbmodels.Prompt{}).
		Order("name, version desc").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения списка промптов")
	}
	return list, nil
}

func (i impl) ListVersions(name string) ([]dbmodels.Prompt, error) {
	var list []dbmodels.Prompt
	err := i.db.Model(dbmodels.Prompt{}).
		Where("name = ?", name).
		Order("version desc").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения версий промпта")
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	res := i.db.Where("id = ?", id).Delete(&dbmodels.Prompt{})
	if res.Error != nil {
		return storeerrors.Classify(res.Error, "ошибка удаления промпта")
	}
	if res.RowsAffected == 0 {
		return storeerrors.Classify(storeerrors.ErrNotFound, "ошибка удаления промпта")
	}
	return nil
}
