package poi

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"pois": svc.All(c.Query("category"))})
	})
}
