package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
	"github.com/mamadbah2/chickenroad/internal/farm"
)

// FlockService describes the farm operations the HTTP layer can perform.
type FlockService interface {
	Snapshot() models.FarmSnapshot
	CreateFirstChicken(name string) (models.Chicken, error)
	BuyChicken(name string) (models.Chicken, error)
	SellChicken(id uuid.UUID) (int, error)
	FeedChickens() error
	CollectEggs()
	SellEggs() int
	BuyUpgrade(kind models.UpgradeKind) error
	ConfirmDeath(chickenID uuid.UUID) bool
	DismissFundsNotice()
}

// ReportService renders a text report of the farm.
type ReportService interface {
	FarmReport() string
}

// NameRequest carries the name of a chicken to create.
type NameRequest struct {
	Name string `json:"name" binding:"required"`
}

// FarmHandler exposes the farm over HTTP.
type FarmHandler struct {
	svc     FlockService
	reports ReportService
	logger  *zap.Logger
}

// NewFarmHandler constructs the HTTP handler adapter.
func NewFarmHandler(svc FlockService, reports ReportService, logger *zap.Logger) *FarmHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FarmHandler{svc: svc, reports: reports, logger: logger}
}

// GetFarm returns the current farm snapshot.
func (h *FarmHandler) GetFarm(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// GetReport returns the plain-text farm report.
func (h *FarmHandler) GetReport(c *gin.Context) {
	c.String(http.StatusOK, h.reports.FarmReport())
}

// CreateFirstChicken hatches the starter chicken.
func (h *FarmHandler) CreateFirstChicken(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	chicken, err := h.svc.CreateFirstChicken(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chicken": chicken, "farm": h.svc.Snapshot()})
}

// BuyChicken purchases a chicken of a random type.
func (h *FarmHandler) BuyChicken(c *gin.Context) {
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	chicken, err := h.svc.BuyChicken(req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"chicken": chicken, "farm": h.svc.Snapshot()})
}

// SellChicken removes a chicken for a refund.
func (h *FarmHandler) SellChicken(c *gin.Context) {
	id, ok := h.chickenID(c)
	if !ok {
		return
	}

	refund, err := h.svc.SellChicken(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund, "farm": h.svc.Snapshot()})
}

// Feed feeds the whole flock.
func (h *FarmHandler) Feed(c *gin.Context) {
	if err := h.svc.FeedChickens(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"farm": h.svc.Snapshot()})
}

// CollectEggs gathers eggs from every chicken.
func (h *FarmHandler) CollectEggs(c *gin.Context) {
	h.svc.CollectEggs()
	c.JSON(http.StatusOK, gin.H{"farm": h.svc.Snapshot()})
}

// SellEggs sells every collected egg.
func (h *FarmHandler) SellEggs(c *gin.Context) {
	earned := h.svc.SellEggs()
	c.JSON(http.StatusOK, gin.H{"earned": earned, "farm": h.svc.Snapshot()})
}

// BuyUpgrade purchases the upgrade named in the path.
func (h *FarmHandler) BuyUpgrade(c *gin.Context) {
	kind := models.UpgradeKind(c.Param("kind"))
	if err := h.svc.BuyUpgrade(kind); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"farm": h.svc.Snapshot()})
}

// ConfirmDeath acknowledges a death notice and removes the chicken.
func (h *FarmHandler) ConfirmDeath(c *gin.Context) {
	id, ok := h.chickenID(c)
	if !ok {
		return
	}

	removed := h.svc.ConfirmDeath(id)
	c.JSON(http.StatusOK, gin.H{"removed": removed, "farm": h.svc.Snapshot()})
}

// DismissFundsNotice clears the insufficient funds flag.
func (h *FarmHandler) DismissFundsNotice(c *gin.Context) {
	h.svc.DismissFundsNotice()
	c.JSON(http.StatusOK, gin.H{"farm": h.svc.Snapshot()})
}

func (h *FarmHandler) chickenID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.badRequest(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *FarmHandler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

func (h *FarmHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("farm operation failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error(), "farm": h.svc.Snapshot()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, farm.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, farm.ErrFlockFull), errors.Is(err, farm.ErrFlockNotEmpty):
		return http.StatusConflict
	case errors.Is(err, farm.ErrChickenNotFound):
		return http.StatusNotFound
	case errors.Is(err, farm.ErrUnknownUpgrade):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
