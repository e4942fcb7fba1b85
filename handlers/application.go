package handlers

import (
	"strconv"
	"time"

	"apptrack/cache"
	"apptrack/models"
	"apptrack/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	listCacheKey = "applications:all"
	listCacheTTL = 30 * time.Second
)

type CreateApplicationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateApplicationRequest uses pointers so an absent field is
// distinguishable from a present-but-empty one.
type UpdateApplicationRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// GetApplications handles GET /applications.
func GetApplications(c *fiber.Ctx) error {
	var apps []models.Application
	err := cache.CacheAside(c.Context(), listCacheKey, &apps, listCacheTTL, func() error {
		var err error
		apps, err = appRepo.List(c.Context())
		return err
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return c.JSON(apps)
}

// CreateApplication handles POST /applications.
func CreateApplication(c *fiber.Ctx) error {
	req := new(CreateApplicationRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if errs := validation.Run(
		validation.Required("title", req.Title, "Title is required"),
		validation.Required("description", req.Description, "Description is required"),
		validation.OneOf("status", req.Status, models.Statuses, "Status must be 'pending', 'approved', or 'rejected'"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	app := models.Application{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	if err := appRepo.Create(c.Context(), &app); err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), listCacheKey)

	return c.Status(fiber.StatusCreated).JSON(app)
}

// UpdateApplication handles PUT /applications/:id. Only fields present in
// the body are touched.
func UpdateApplication(c *fiber.Ctx) error {
	idParam := c.Params("id")

	// An empty body is a valid no-field update.
	req := new(UpdateApplicationRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	if errs := validation.Run(
		validation.IntParam("id", idParam, "ID must be an integer"),
		validation.OptionalNonEmpty("title", req.Title, "Title cannot be empty"),
		validation.OptionalNonEmpty("description", req.Description, "Description cannot be empty"),
		validation.OptionalOneOf("status", req.Status, models.Statuses, "Invalid status"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	id, _ := strconv.Atoi(idParam)

	app, err := appRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if req.Title != nil {
		app.Title = *req.Title
	}
	if req.Description != nil {
		app.Description = *req.Description
	}
	if req.Status != nil {
		app.Status = *req.Status
	}

	if err := appRepo.Update(c.Context(), app); err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), listCacheKey)

	return c.JSON(app)
}

// DeleteApplication handles DELETE /applications/:id.
func DeleteApplication(c *fiber.Ctx) error {
	idParam := c.Params("id")

	if errs := validation.Run(
		validation.IntParam("id", idParam, "ID must be an integer"),
	); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	id, _ := strconv.Atoi(idParam)

	if err := appRepo.Delete(c.Context(), uint(id)); err != nil {
		return models.RespondWithError(c, err)
	}

	cache.Invalidate(c.Context(), listCacheKey)

	return c.JSON(fiber.Map{
		"message": "Deleted successfully",
	})
}
