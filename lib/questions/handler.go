package questionhandler

import (
	"sarah-testing/db"
	questionstore "sarah-testing/lib/questions/store"
	sourcestore "sarah-testing/lib/questions/source-store"
	initchecker "sarah-testing/lib/utils/init-checker"
	storeerrors "sarah-testing/lib/utils/store-errors"
	apimodels "sarah-testing/models/api"
	questionapimodels "sarah-testing/models/api/question"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data questionapimodels.QuestionData) (questionapimodels.QuestionView, error)
	Get(id string) (questionapimodels.QuestionView, error)
	List() ([]questionapimodels.QuestionView, error)
	Delete(id string) error
	AddSource(questionID string, data questionapimodels.SourceData) (questionapimodels.SourceView, error)
	ListSources(questionID string) ([]questionapimodels.SourceView, error)
}

var Instance Provider

func NewHandler() {
	Instance = New(questionstore.NewInstance(db.DB), sourcestore.NewInstance(db.DB))
}

func New(store questionstore.Provider, sourceStore sourcestore.Provider) Provider {
	instance := impl{
		store:       store,
		sourceStore: sourceStore,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"sourceStore", instance.sourceStore,
	)
	return instance
}

type impl struct {
	store       questionstore.Provider
	sourceStore sourcestore.Provider
}

func (i impl) Create(data questionapimodels.QuestionData) (questionapimodels.QuestionView, error) {
	if err := data.Validate(); err != nil {
		return questionapimodels.QuestionView{}, apimodels.NewValidationError(err)
	}
	question, sources := data.ToDB()
	rec, err := i.store.Create(question, sources)
	if err != nil {
		log.WithError(err).Error("ошибка добавления вопроса")
		return questionapimodels.QuestionView{}, err
	}
	log.WithField("question_id", rec.ID).WithField("sources", len(rec.Sources)).Info("добавлен вопрос")
	return questionapimodels.QuestionConvert(*rec), nil
}

func (i impl) Get(id string) (questionapimodels.QuestionView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return questionapimodels.QuestionView{}, err
	}
	if rec == nil {
		return questionapimodels.QuestionView{}, storeerrors.Classify(storeerrors.ErrNotFound, "вопрос не найден")
	}
	return questionapimodels.QuestionConvert(*rec), nil
}

func (i impl) List() ([]questionapimodels.QuestionView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]questionapimodels.QuestionView, 0, len(list))
	for _, rec := range list {
		sources, err := i.sourceStore.ListByQuestion(rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Sources = sources
		result = append(result, questionapimodels.QuestionConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(id string) error {
	if err := i.store.Delete(id); err != nil {
		log.WithField("question_id", id).WithError(err).Warn("ошибка удаления вопроса")
		return err
	}
	log.WithField("question_id", id).Info("вопрос удален")
	return nil
}

func (i impl) AddSource(questionID string, data questionapimodels.SourceData) (questionapimodels.SourceView, error) {
	if err := data.Validate(); err != nil {
		return questionapimodels.SourceView{}, apimodels.NewValidationError(err)
	}
	question, err := i.store.GetByID(questionID)
	if err != nil {
		return questionapimodels.SourceView{}, err
	}
	if question == nil {
		return questionapimodels.SourceView{}, storeerrors.Classify(storeerrors.ErrNotFound, "вопрос не найден")
	}
	if len(question.Sources) >= questionapimodels.MaxSources {
		return questionapimodels.SourceView{}, apimodels.NewValidationError(errors.Errorf("у вопроса не может быть больше %d источников", questionapimodels.MaxSources))
	}
	source := data.ToDB()
	source.QuestionID = questionID
	rec, err := i.sourceStore.Create(source)
	if err != nil {
		return questionapimodels.SourceView{}, err
	}
	return questionapimodels.SourceConvert(*rec), nil
}

func (i impl) ListSources(questionID string) ([]questionapimodels.SourceView, error) {
	list, err := i.sourceStore.ListByQuestion(questionID)
	if err != nil {
		return nil, err
	}
	result := make([]questionapimodels.SourceView, 0, len(list))
	for _, rec := range list {
		result = append(result, questionapimodels.SourceConvert(rec))
	}
	return result, nil
}
