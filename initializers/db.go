package initializers

import (
	"sarah-testing/config"
	"sarah-testing/db"
)

func InitDBConnection() {
	err := db.Connect(config.Conf.Database.URL, config.Conf.Database.Key, config.Conf.Database.LocalPath,
		*config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}

	if *config.Conf.Database.SeedOnStart {
		db.InitPreload()
	}
}
