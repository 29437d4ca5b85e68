package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"backend-trailmap/internal/trail"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the export endpoints under a trail-scoped router.
func RegisterRoutes(r fiber.Router, svc *trail.Service) {
	r.Get("/:id/export/trail.csv", func(c *fiber.Ctx) error {
		records, err := svc.Records(c.Params("id"))
		if err != nil {
			return exportError(err)
		}
		if len(records) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "nothing to export")
		}
		return sendCSV(c, "trail-records", TrailCSV(records))
	})

	r.Get("/:id/export/track.csv", func(c *fiber.Ctx) error {
		points, err := svc.TrackPoints(c.Params("id"))
		if err != nil {
			return exportError(err)
		}
		return sendCSV(c, "track-detail", TrackCSV(points))
	})

	r.Get("/:id/export/consolidated.csv", func(c *fiber.Ctx) error {
		id := c.Params("id")
		records, err := svc.Records(id)
		if err != nil {
			return exportError(err)
		}
		points, err := svc.TrackPoints(id)
		if err != nil && !errors.Is(err, trail.ErrNoTrackDetail) {
			return exportError(err)
		}
		if len(points) == 0 && len(records) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "nothing to export")
		}
		return sendCSV(c, "consolidated", ConsolidatedCSV(points, records))
	})

	r.Get("/:id/export/snapshot.json", func(c *fiber.Ctx) error {
		snap, err := svc.BuildSnapshot(c.Params("id"))
		if err != nil {
			return exportError(err)
		}
		body, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, attachment(snap.HikeName, "json"))
		return c.Send(body)
	})
}

func sendCSV(c *fiber.Ctx, name string, body []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment(name, "csv"))
	return c.Send(body)
}

func attachment(name, ext string) string {
	return fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%s.%s", name, time.Now().UTC().Format("2006-01-02"), ext))
}

func exportError(err error) error {
	switch {
	case errors.Is(err, trail.ErrTrailNotFound):
		return fiber.NewError(fiber.StatusNotFound, "trail not found")
	case errors.Is(err, trail.ErrNoTrackDetail), errors.Is(err, trail.ErrNoRecords):
		return fiber.NewError(fiber.StatusNotFound, "nothing to export")
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}
