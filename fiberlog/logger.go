package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		d.err = err
		if c.Method() == fiber.MethodOptions {
			return err
		}

		message := getMessage(c)
		entity := log.WithFields(getLogrusFields(ftm, c, d))
		if cfg.Logger != nil {
			entity = cfg.Logger.WithFields(getLogrusFields(ftm, c, d))
		}
		switch status := c.Response().StatusCode(); {
		case status >= fiber.StatusInternalServerError:
			entity.Error(message)
		case status >= fiber.StatusMultipleChoices:
			entity.Warn(message)
		default:
			entity.Info(message)
		}
		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	if c.Route() != nil && c.Route().Path != "" {
		return "запрос api " + c.Route().Path
	}
	return "запрос api"
}
