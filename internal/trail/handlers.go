package trail

import (
	"errors"
	"io"
	"mime/multipart"

	"backend-trailmap/internal/photo"
	"backend-trailmap/internal/track"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		_ = c.BodyParser(&body)
		if body.Name == "" {
			body.Name = "Unnamed hike"
		}
		t := svc.Create(body.Name)
		return c.Status(fiber.StatusCreated).JSON(t)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		summary, err := svc.Summary(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trail not found")
		}
		return c.JSON(summary)
	})

	r.Post("/:id/gpx", func(c *fiber.Ctx) error {
		data, err := uploadBytes(c, "file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "gpx file required")
		}
		count, err := svc.UploadTrack(c.Context(), c.Params("id"), data)
		if err != nil {
			return uploadError(err)
		}
		return c.JSON(fiber.Map{"points": count})
	})

	r.Get("/:id/track", func(c *fiber.Ctx) error {
		mode := track.Mode(c.Query("mode", string(track.ModeProportional)))
		fc, err := svc.Track(c.Params("id"), mode)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trail not found")
		}
		return c.JSON(fc)
	})

	r.Post("/:id/photos", func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "multipart form required")
		}
		headers := form.File["photos"]
		if len(headers) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "photos field required")
		}

		files := make([]photo.File, 0, len(headers))
		for _, h := range headers {
			data, err := readHeader(h)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			files = append(files, photo.File{
				Name:        h.Filename,
				ContentType: h.Header.Get("Content-Type"),
				Data:        data,
			})
		}

		records, err := svc.UploadPhotos(c.Context(), c.Params("id"), files)
		if err != nil {
			return uploadError(err)
		}
		return c.JSON(fiber.Map{"records": records})
	})

	r.Post("/:id/import", func(c *fiber.Ctx) error {
		records, err := svc.Import(c.Context(), c.Params("id"), c.Body())
		if err != nil {
			if errors.Is(err, ErrTrailNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "trail not found")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"records": records})
	})

	r.Delete("/:id/data", func(c *fiber.Ctx) error {
		if err := svc.ClearData(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trail not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func uploadError(err error) error {
	if errors.Is(err, ErrTrailNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "trail not found")
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// uploadBytes reads a multipart file field, falling back to the raw request
// body so plain POSTs work too.
func uploadBytes(c *fiber.Ctx, field string) ([]byte, error) {
	if h, err := c.FormFile(field); err == nil {
		return readHeader(h)
	}
	if len(c.Body()) > 0 {
		return c.Body(), nil
	}
	return nil, errors.New("empty upload")
}

func readHeader(h *multipart.FileHeader) ([]byte, error) {
	f, err := h.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
