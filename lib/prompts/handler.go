package prompthandler

import (
	"sarah-testing/db"
	promptstore "sarah-testing/lib/prompts/store"
	initchecker "sarah-testing/lib/utils/init-checker"
	storeerrors "sarah-testing/lib/utils/store-errors"
	apimodels "sarah-testing/models/api"
	promptapimodels "sarah-testing/models/api/prompt"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data promptapimodels.PromptData) (promptapimodels.PromptView, error)
	Get(id string) (promptapimodels.PromptView, error)
	List() ([]promptapimodels.PromptView, error)
	ListGrouped() ([]promptapimodels.PromptGroup, error)
	Versions(name string) ([]promptapimodels.PromptView, error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = New(promptstore.NewInstance(db.DB))
}

func New(store promptstore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store promptstore.Provider
}

func (i impl) Create(data promptapimodels.PromptData) (promptapimodels.PromptView, error) {
	if err := data.Validate(); err != nil {
		return promptapimodels.PromptView{}, apimodels.NewValidationError(err)
	}
	rec, err := i.store.Create(data.Name, data.Content)
	if err != nil {
		log.WithField("name", data.Name).WithError(err).Error("ошибка добавления промпта")
		return promptapimodels.PromptView{}, err
	}
	log.WithField("prompt_id", rec.ID).WithField("version", rec.Version).Info("добавлен промпт")
	return promptapimodels.PromptConvert(*rec), nil
}

func (i impl) Get(id string) (promptapimodels.PromptView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return promptapimodels.PromptView{}, err
	}
	if rec == nil {
		return promptapimodels.PromptView{}, storeerrors.Classify(storeerrors.ErrNotFound, "промпт не найден")
	}
	return promptapimodels.PromptConvert(*rec), nil
}

func (i impl) List() ([]promptapimodels.PromptView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]promptapimodels.PromptView, 0, len(list))
	for _, rec := range list {
		result = append(result, promptapimodels.PromptConvert(rec))
	}
	return result, nil
}

func (i impl) ListGrouped() ([]promptapimodels.PromptGroup, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	return promptapimodels.PromptGroupConvert(list), nil
}

func (i impl) Versions(name string) ([]promptapimodels.PromptView, error) {
	list, err := i.store.ListVersions(name)
	if err != nil {
		return nil, err
	}
	result := make([]promptapimodels.PromptView, 0, len(list))
	for _, rec := range list {
		result = append(result, promptapimodels.PromptConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	if err := i.store.Delete(id); err != nil {
		log.WithField("prompt_id", id).WithError(err).Warn("ошибка удаления промпта")
		return err
	}
	log.WithField("prompt_id", id).Info("промпт удален")
	return nil
}
