package waiver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/core/logger"
	"github.com/andlrutt/Emerald-Youth-Hack-for-Nonprofits/feature/waiver/roster"
)

// Handler handles HTTP requests for the waiver pipeline.
type Handler struct {
	service *Service
	store   *StudentStore
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler. store may be nil when no student
// database is configured.
func NewHandler(service *Service, store *StudentStore, l *zap.Logger) *Handler {
	return &Handler{service: service, store: store, logger: l}
}

// RegisterRoutes registers the waiver routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/waiver")
	group.Post("/plan", h.HandlePlan)
	group.Post("/merge", h.HandleMerge)
	group.Post("/report", h.HandleReport)
	group.Get("/students", h.HandleListStudents)
}

// HandlePlan classifies an uploaded roster against uploaded waiver PDFs.
// Expects multipart form fields: "roster" (one file), "waivers" (many).
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	plan, err := h.planFromForm(c)
	if err != nil {
		return h.planError(c, l, err)
	}

	return c.JSON(plan)
}

// HandleMerge runs the full pipeline and returns the merged PDF.
// Partial success (some files skipped) still returns the document, with the
// skip count in the X-Merge-Skipped header; a run where nothing decoded is
// a 422, distinct from the 400 of a fatal roster error.
func (h *Handler) HandleMerge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	plan, err := h.planFromForm(c)
	if err != nil {
		return h.planError(c, l, err)
	}

	res := h.service.ExecuteMerge(plan)
	if res.Output == nil {
		l.Warn("Nothing to merge", zap.Strings("errors", res.Errors))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "no valid waiver PDFs could be merged",
			"details": res.Errors,
		})
	}

	filename := fmt.Sprintf("merged_ferpa_waivers_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set("X-Merge-Skipped", fmt.Sprintf("%d", len(res.Errors)))
	return c.Send(res.Output)
}

// HandleReport runs classification and returns the plain-text status report.
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	plan, err := h.planFromForm(c)
	if err != nil {
		return h.planError(c, l, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.SendString(h.service.Report(plan))
}

// HandleListStudents returns the student roster from the database.
func (h *Handler) HandleListStudents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if h.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "student database not configured",
		})
	}

	students, err := h.store.All()
	if err != nil {
		l.Error("Failed to list students", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"total":    len(students),
		"students": students,
	})
}

// planFromForm parses the multipart form and builds the merge plan.
func (h *Handler) planFromForm(c *fiber.Ctx) (*Plan, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("expected multipart form: %w", err)
	}

	rosterFiles := form.File["roster"]
	if len(rosterFiles) != 1 {
		return nil, fmt.Errorf("expected exactly one roster file, got %d", len(rosterFiles))
	}
	rosterData, err := readUpload(rosterFiles[0])
	if err != nil {
		return nil, err
	}

	pool := make(map[string][]byte, len(form.File["waivers"]))
	for _, fh := range form.File["waivers"] {
		data, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		pool[fh.Filename] = data
	}

	return h.service.PlanMerge(rosterFiles[0].Filename, bytes.NewReader(rosterData), pool)
}

// planError maps planning failures to HTTP statuses. All of them are fatal
// client-data problems, so they surface as 400 with the message verbatim.
func (h *Handler) planError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var schemaErr *roster.SchemaError
	var dupErr *roster.DuplicateIDError
	var parseErr *roster.ParseError
	var nameErr *InvalidFilenamesError

	switch {
	case errors.As(err, &schemaErr), errors.As(err, &dupErr), errors.As(err, &parseErr), errors.As(err, &nameErr):
		l.Warn("Plan rejected", zap.Error(err))
	default:
		l.Error("Plan failed", zap.Error(err))
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}
