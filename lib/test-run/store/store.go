package testrunstore

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	storeerrors "sarah-testing/lib/utils/store-errors"
	dbmodels "sarah-testing/models/db"
)

type Provider interface {
	Create(rec dbmodels.TestRun) (*dbmodels.TestRun, error)
	GetByID(id string) (*dbmodels.TestRun, error)
	List() ([]dbmodels.TestRun, error)
	Delete(id string) error
	GetRunData(ctx context.Context, runID string) (*RunData, error)
}

// RunData прогон со всеми связанными данными для отображения и выгрузки
type RunData struct {
	Run       dbmodels.TestRun
	Prompt    *dbmodels.Prompt // nil, если промпт удален
	Results   []dbmodels.RunResult
	Questions map[string]dbmodels.Question
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TestRun) (*dbmodels.TestRun, error) {
	rec.Prompt = nil
	err := i.db.Create(&rec).Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка создания прогона")
	}
	return &rec, nil
}

func (i impl) GetByID(id string) (*dbmodels.TestRun, error) {
	var rec dbmodels.TestRun
	err := i.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeerrors.Classify(err, "ошибка получения прогона")
	}
	return &rec, nil
}

func (i impl) List() ([]dbmodels.TestRun, error) {
	var list []dbmodels.TestRun
	err := i.db.Model(dbmodels.TestRun{}).
		Order("created_at desc, id").
		Find(&list).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения списка прогонов")
	}
	return list, nil
}

// Delete результаты прогона удаляются каскадно
func (i impl) Delete(id string) error {
	res := i.db.Where("id = ?", id).Delete(&dbmodels.TestRun{})
	if res.Error != nil {
		return storeerrors.Classify(res.Error, "ошибка удаления прогона")
	}
	if res.RowsAffected == 0 {
		return storeerrors.Classify(storeerrors.ErrNotFound, "ошибка удаления прогона")
	}
	return nil
}

func (i impl) GetRunData(ctx context.Context, runID string) (*RunData, error) {
	run, err := i.GetByID(runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, nil
	}
	result := RunData{
		Run:       *run,
		Questions: map[string]dbmodels.Question{},
	}
	db := i.db.WithContext(ctx)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var prompt dbmodels.Prompt
		err := db.Where("id = ?", run.PromptID).First(&prompt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return storeerrors.Classify(err, "ошибка получения промпта прогона")
		}
		result.Prompt = &prompt
		return nil
	})
	g.Go(func() error {
		err := db.Model(dbmodels.RunResult{}).
			Where("run_id = ?", runID).
			Order("created_at, id").
			Find(&result.Results).
			Error
		if err != nil {
			return storeerrors.Classify(err, "ошибка получения результатов прогона")
		}
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(result.Results))
	seen := map[string]bool{}
	for _, rec := range result.Results {
		if !seen[rec.QuestionID] {
			seen[rec.QuestionID] = true
			ids = append(ids, rec.QuestionID)
		}
	}
	if len(ids) == 0 {
		return &result, nil
	}
	var questions []dbmodels.Question
	err = db.Preload("Sources", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	}).
		Where("id IN ?", ids).
		Find(&questions).
		Error
	if err != nil {
		return nil, storeerrors.Classify(err, "ошибка получения вопросов прогона")
	}
	for _, question := range questions {
		result.Questions[question.ID] = question
	}
	return &result, nil
}
