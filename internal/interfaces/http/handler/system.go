package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aqari/backend/internal/infrastructure/scheduler"
)

// SystemHandler handles health, info and billing scheduler endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	scheduler *scheduler.BillingCronScheduler
}

// NewSystemHandler creates a new SystemHandler. The scheduler may be nil
// when the billing cron is disabled.
func NewSystemHandler(billingScheduler *scheduler.BillingCronScheduler) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		scheduler: billingScheduler,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health reports liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// GetSystemInfo returns basic build and uptime information
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Aqari Backend API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// SchedulerStatus reports the billing cron state
func (h *SystemHandler) SchedulerStatus(c *gin.Context) {
	if h.scheduler == nil {
		h.Success(c, gin.H{"enabled": false})
		return
	}
	h.Success(c, h.scheduler.GetStatus())
}

// TriggerSweeps runs the billing sweeps outside the nightly schedule
func (h *SystemHandler) TriggerSweeps(c *gin.Context) {
	if h.scheduler == nil {
		h.BadRequest(c, "Billing scheduler is disabled")
		return
	}
	if err := h.scheduler.TriggerManualRun(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"triggered": true})
}
