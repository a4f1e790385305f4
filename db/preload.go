package db

import (
	promptstore "sarah-testing/lib/prompts/store"
	questionstore "sarah-testing/lib/questions/store"
	dbmodels "sarah-testing/models/db"

	log "github.com/sirupsen/logrus"
)

// InitPreload заполняет пустую БД примером вопроса с источниками и базовым промптом
func InitPreload() {
	addSampleQuestion()
	addSamplePrompt()
}

func addSampleQuestion() {
	store := questionstore.NewInstance(DB)
	rowCount, err := store.Count()
	if err != nil {
		log.WithError(err).Error("ошибка добавления примера вопроса")
		return
	}
	if rowCount > 0 {
		return
	}
	question := dbmodels.Question{
		Name:    "Remote Work Policy",
		Content: "What are our company's policies regarding remote work and flexible hours?",
	}
	sources := []dbmodels.Source{
		{
			Title: "Company Remote Work Policy",
			Content: dbmodels.NewTextPages(
				"[Page 1]\n1. Remote Work Guidelines\n\n"+
					"Our company supports flexible working arrangements including remote work options. "+
					"The following guidelines apply:\n"+
					"- Employees may work remotely up to 3 days per week with manager approval\n"+
					"- Core hours are 10am-3pm when all employees should be available\n"+
					"- Remote work arrangements must not impact team collaboration or productivity\n"+
					"- Employees must have reliable internet and a suitable home office setup\n",
				"[Page 2]\n2. Flexible Hours Policy\n\n"+
					"We offer flexible working hours to help employees maintain work-life balance:\n"+
					"- Standard workday is 8 hours between 7am-7pm\n"+
					"- Must be present during core hours (10am-3pm)\n"+
					"- Schedule changes require manager approval\n"+
					"- Overtime must be pre-approved",
			),
		},
		{
			Title: "Employee Handbook - Work Arrangements",
			Content: dbmodels.NewTextPages(
				"[Page 1]\nWork Arrangements and Scheduling\n\n"+
					"TheKey Support recognizes the importance of work-life balance and offers "+
					"various flexible working arrangements to accommodate our employees' needs "+
					"while ensuring business continuity and team collaboration.\n\n"+
					"Remote work privileges may be revoked if:\n"+
					"- Performance or productivity declines\n"+
					"- Communication becomes ineffective\n"+
					"- Core hours are not maintained\n"+
					"- Technical requirements are not met",
				"[Page 2]\nTechnology Requirements\n\n"+
					"Remote workers must have:\n"+
					"- High-speed internet (minimum 50Mbps)\n"+
					"- Dedicated workspace\n"+
					"- Company-provided laptop\n"+
					"- Secure VPN connection\n"+
					"- Video conferencing capability",
			),
		},
	}
	if _, err = store.Create(question, sources); err != nil {
		log.WithError(err).Error("ошибка добавления примера вопроса")
		return
	}
	log.Info("добавлен пример вопроса")
}

func addSamplePrompt() {
	store := promptstore.NewInstance(DB)
	list, err := store.List()
	if err != nil {
		log.WithError(err).Error("ошибка добавления примера промпта")
		return
	}
	if len(list) > 0 {
		return
	}
	content := "You are a helpful HR assistant. Answer the employee question using only the source documents.\n\n" +
		"Sources:\n{sources}\n\n" +
		"Question: {question}"
	if _, err = store.Create("Default HR Assistant", content); err != nil {
		log.WithError(err).Error("ошибка добавления примера промпта")
		return
	}
	log.Info("добавлен пример промпта")
}
