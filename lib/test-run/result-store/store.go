package runresultstore

import (
	"gorm.io/gorm"
	storeerrors "sarah-testing/lib/utils/store-errors"
	dbmodels "sarah-testing/models/db"
)

type Provider interface {
	Create(rec dbmodels.RunResult) (*dbmodels.RunResult, error)
	ListByRun(runID string) ([]dbmodels.RunResult, error)
	CountByRun(runID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RunResult) (*dbmodels.RunResult, error) {
	rec.Run = nil
	rec.Question = nil
	if rec.Status == "" {
		rec.Status = dbmodels.RunResultSuccess
	}
	err := i.db.Create(&rec).Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка сохранения результата")
	}
	return &rec, nil
}

func (i impl) ListByRun(runID string) ([]dbmodels.RunResult, error) {
	var list []dbmodels.RunResult
	err := i.db.Model(dbmodels.RunResult{}).
		Where("run_id = ?", runID).
		Order("created_at, id").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения результатов прогона")
	}
	return list, nil
}

func (i impl) CountByRun(runID string) (int64, error) {
	var rowCount int64
	err := i.db.Model(dbmodels.RunResult{}).
		Where("run_id = ?", runID).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, storeerrors.Classify(err, "ошибка получения количества результатов")
	}
	return rowCount, nil
}
