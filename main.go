package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
	"sarah-testing/config"
	"sarah-testing/controllers/ui"
	apiv1 "sarah-testing/controllers/v1"
	"sarah-testing/db"
	"sarah-testing/fiberlog"
	"sarah-testing/initializers"
	authutils "sarah-testing/lib/utils/auth-utils"
	"sarah-testing/middleware"
)

const bodyLimit = 20 * 1024 * 1024

func main() {
	if len(os.Args) > 2 && os.Args[1] == "token" {
		printToken(os.Args[2])
		return
	}
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	app.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyUrl))

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))
	apiv1.InitHealthRouters(app)

	//api
	apiV1 := fiber.New(fiber.Config{BodyLimit: bodyLimit})
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE",
	}))
	apiV1.Use(middleware.WithBodyLimit(bodyLimit))
	apiV1.Use(middleware.APIAuth(config.Conf.App.JWTSecret))
	apiV1.Use(middleware.SyncAfterWrite())
	app.Mount("/api/v1", apiV1)
	apiv1.InitQuestionApiRouters(apiV1)
	apiv1.InitPromptApiRouters(apiV1)
	apiv1.InitTestRunApiRouters(apiV1)
	apiv1.InitChatApiRouters(apiV1)

	//ui
	ui.InitUIRouters(app, fiberlog.New(*initializers.LoggerConfig), middleware.SyncAfterWrite())

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Error(err)
	}
	cancel()
	wg.Wait()
	db.Close()
	log.Info("HTTP server successfully stopped")
}

// printToken выпуск токена для клиента API: sarah-testing token <client>
func printToken(subject string) {
	config.InitConfig()
	ttl := time.Duration(config.Conf.App.JWTExpireInSec) * time.Second
	token, err := authutils.GetToken(config.Conf.App.JWTSecret, subject, ttl)
	if err != nil {
		log.WithError(err).Fatal("ошибка выпуска токена")
	}
	fmt.Println(token)
}
