// Package api exposes the providers over a small JSON HTTP API.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kurasora/kurasora/constant"
	"github.com/kurasora/kurasora/log"
	"github.com/kurasora/kurasora/network"
	"github.com/kurasora/kurasora/provider"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/streamurl"
)

// SourceFactory builds the source a request names.
type SourceFactory func(name string) (source.Source, error)

// NewApp returns a fiber app with middlewares and routes set up.
// A nil factory means provider.Create. No origins means "*".
func NewApp(create SourceFactory, allowedOrigins ...string) *fiber.App {
	if create == nil {
		create = provider.Create
	}

	app := fiber.New(fiber.Config{
		AppName:               constant.Kurasora,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
		Output: log.Provider("api").Writer(),
	}))
	app.Use(recover.New())

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(allowedOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ","),
	}))

	routes(app, create)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, provider.ErrUnknown), errors.Is(err, source.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, streamurl.ErrMalformedInput):
		code = fiber.StatusBadRequest
	case errors.Is(err, network.ErrStatus):
		code = fiber.StatusBadGateway
	}

	if code >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
