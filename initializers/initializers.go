package initializers

import (
	"context"

	"sarah-testing/config"
	"sarah-testing/fiberlog"
	chathandler "sarah-testing/lib/chat"
	"sarah-testing/lib/export"
	prompthandler "sarah-testing/lib/prompts"
	questionhandler "sarah-testing/lib/questions"
	testrun "sarah-testing/lib/test-run"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	// файл локальной БД подтягивается из бакета до подключения
	InitS3(ctx)
	InitDBConnection()
	InitSmtp()
	InitLLM()
	questionhandler.NewHandler()
	prompthandler.NewHandler()
	testrun.NewHandler(config.Conf.Run.FailurePolicy)
	chathandler.NewHandler(config.Conf.Anthropic.DefaultModel)
	export.NewHandler()
}
