package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kurasora/kurasora/inline"
	"github.com/kurasora/kurasora/provider"
	"github.com/kurasora/kurasora/source"
	"github.com/kurasora/kurasora/streamurl"
	"github.com/samber/lo"
)

const (
	baseURL    = "/api"
	sourcesURL = baseURL + "/sources"
	decryptURL = baseURL + "/decrypt"
	sourceURL  = baseURL + "/:source"

	sourceKey = "source"
)

type sourceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

type decryptRequest struct {
	Token string `json:"token"`
}

type decryptResponse struct {
	URL string `json:"url"`
}

func routes(app *fiber.App, create SourceFactory) {
	app.Get(sourcesURL, func(c *fiber.Ctx) error {
		return c.JSON(lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) sourceInfo {
			return sourceInfo{ID: p.ID, Name: p.Name, Lang: p.Lang}
		}))
	})

	app.Post(decryptURL, func(c *fiber.Ctx) error {
		var request decryptRequest
		if err := c.BodyParser(&request); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		decrypted, err := streamurl.Decrypt(request.Token)
		if err != nil {
			return err
		}
		return c.JSON(decryptResponse{URL: decrypted})
	})

	group := app.Group(sourceURL, func(c *fiber.Ctx) error {
		src, err := create(c.Params("source"))
		if err != nil {
			return err
		}
		c.Locals(sourceKey, src)
		return c.Next()
	})

	group.Get("/home", func(c *fiber.Ctx) error {
		src := c.Locals(sourceKey).(source.Source)
		return c.JSON(src.MainPage())
	})

	group.Get("/home/:section", func(c *fiber.Ctx) error {
		src := c.Locals(sourceKey).(source.Source)

		section, ok := lo.Find(src.MainPage(), func(r source.MainPageRequest) bool {
			return r.Name == c.Params("section")
		})
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "unknown section "+c.Params("section"))
		}

		list, err := src.MainPageSection(c.UserContext(), section, max(c.QueryInt("page", 1), 1))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	group.Get("/search", func(c *fiber.Ctx) error {
		q := c.Query("q")
		if q == "" {
			return fiber.NewError(fiber.StatusBadRequest, "missing query parameter q")
		}

		results, err := inline.Search(c.UserContext(), c.Locals(sourceKey).(source.Source), q)
		if err != nil {
			return err
		}
		if results == nil {
			results = []*source.SearchResponse{}
		}
		return c.JSON(results)
	})

	group.Get("/load", func(c *fiber.Ctx) error {
		url := c.Query("url")
		if url == "" {
			return fiber.NewError(fiber.StatusBadRequest, "missing query parameter url")
		}

		loaded, err := inline.Load(c.UserContext(), c.Locals(sourceKey).(source.Source), url)
		if err != nil {
			return err
		}
		return c.JSON(loaded)
	})

	group.Get("/links", func(c *fiber.Ctx) error {
		data := c.Query("data")
		if data == "" {
			return fiber.NewError(fiber.StatusBadRequest, "missing query parameter data")
		}

		links, err := source.CollectLinks(c.UserContext(), c.Locals(sourceKey).(source.Source), data)
		if err != nil && len(links.Links) == 0 {
			return err
		}
		return c.JSON(links)
	})
}
