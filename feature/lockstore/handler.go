package lockstore

import (
	"errors"

	"postsync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the lockfile store.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, l *zap.Logger) *Handler {
	return &Handler{service: service, logger: l}
}

// RegisterRoutes registers the lockfile store routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/lockfiles")
	group.Get("/:repositoryId", h.HandleGet)
	group.Put("/:repositoryId", h.HandlePut)
}

// HandleGet returns the stored lockfile for a repository. An absent
// record is a 200 with null data: first runs are not errors.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	repositoryID := c.Params("repositoryId")
	l := logger.WithRequestID(h.logger, c)

	lock, err := h.service.Get(c.Context(), repositoryID)
	if err != nil {
		l.Error("Lockfile lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if lock == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": lock})
}

// HandlePut replaces the stored lockfile wholesale.
func (h *Handler) HandlePut(c *fiber.Ctx) error {
	repositoryID := c.Params("repositoryId")
	l := logger.WithRequestID(h.logger, c)

	var req PutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	if err := h.service.Put(c.Context(), repositoryID, req); err != nil {
		if errors.Is(err, ErrRevisionConflict) {
			l.Warn("Rejected stale lockfile write",
				zap.String("repository_id", repositoryID))
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Lockfile write failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"data": "ok"})
}
