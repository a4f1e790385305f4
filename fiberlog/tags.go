package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid     = "pid"
	TagLatency = "latency"
	TagStatus  = "status"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagQuery   = "query"
	TagBody    = "body"
	TagResBody = "resBody"
	TagError   = "error"
	RequestID  = "requestid"
)

// тело ответа больше лимита в лог не пишется целиком
const maxBodyLogLen = 2048

type data struct {
	pid   int
	start time.Time
	end   time.Time
	err   error
}

// FuncTag значение поля лога для тега
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(_ *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(_ *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, _ *data) interface{} {
			return c.Path()
		},
		TagIP: func(c *fiber.Ctx, _ *data) interface{} {
			return c.IP()
		},
		TagQuery: func(c *fiber.Ctx, _ *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagBody: func(c *fiber.Ctx, _ *data) interface{} {
			return truncate(c.Body())
		},
		TagResBody: func(c *fiber.Ctx, _ *data) interface{} {
			if c.Response().StatusCode() < fiber.StatusBadRequest {
				return ""
			}
			return truncate(c.Response().Body())
		},
		TagError: func(_ *fiber.Ctx, d *data) interface{} {
			if d.err == nil {
				return ""
			}
			return d.err.Error()
		},
		RequestID: func(c *fiber.Ctx, _ *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	ftm := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			ftm[tag] = ft
		}
	}
	return ftm
}

func truncate(body []byte) string {
	if len(body) > maxBodyLogLen {
		return string(body[:maxBodyLogLen]) + "..."
	}
	return string(body)
}
