package server

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aristath/divdesk/internal/database"
	"github.com/aristath/divdesk/internal/di"
	"github.com/aristath/divdesk/internal/scheduler"
)

// SystemHandlers serves process, host and database status plus manual job triggers
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	container *di.Container
	jobs      *di.JobInstances
	startedAt time.Time
}

// NewSystemHandlers creates a new system handlers instance. jobs may be nil.
func NewSystemHandlers(log zerolog.Logger, dataDir string, container *di.Container, jobs *di.JobInstances) *SystemHandlers {
	return &SystemHandlers{
		log:       log.With().Str("handler", "system").Logger(),
		dataDir:   dataDir,
		container: container,
		jobs:      jobs,
		startedAt: time.Now(),
	}
}

// SystemStatusResponse represents system status
type SystemStatusResponse struct {
	Status         string  `json:"status"`
	Uptime         string  `json:"uptime"`
	LastChecked    string  `json:"last_checked"`
	SecurityCount  int     `json:"security_count"`
	AccountCount   int     `json:"account_count"`
	OpenTradeCount int     `json:"open_trade_count"`
	HolidayCount   int     `json:"holiday_count"`
	Goroutines     int     `json:"goroutines"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	DiskFreeMB     float64 `json:"disk_free_mb"`
}

// DatabaseStatsResponse represents database statistics
type DatabaseStatsResponse struct {
	Databases   []DBInfo `json:"databases"`
	TotalSizeMB float64  `json:"total_size_mb"`
	LastChecked string   `json:"last_checked"`
}

// DBInfo represents information about a single database
type DBInfo struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Error   string  `json:"error,omitempty"`
	SizeMB  float64 `json:"size_mb"`
	Healthy bool    `json:"healthy"`
}

// RegisterRoutes registers system routes
func (h *SystemHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/system", func(r chi.Router) {
		r.Get("/status", h.HandleSystemStatus)
		r.Get("/databases", h.HandleDatabaseStats)

		r.Post("/jobs/holiday-sync", h.HandleTriggerHolidaySync)
		r.Post("/jobs/database-maintenance", h.HandleTriggerDatabaseMaintenance)
	})
}

// HandleSystemStatus returns record counts and host statistics
// GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := "healthy"

	countRow := func(db *database.DB, query string) int {
		var n int
		if err := db.Conn().QueryRowContext(ctx, query).Scan(&n); err != nil && err != sql.ErrNoRows {
			h.log.Error().Err(err).Str("db", db.Name()).Msg("Failed to count rows")
			status = "degraded"
		}
		return n
	}

	cpuPercent, memPercent := h.getSystemStats()

	response := SystemStatusResponse{
		Status:         status,
		Uptime:         time.Since(h.startedAt).Round(time.Second).String(),
		LastChecked:    time.Now().Format(time.RFC3339),
		SecurityCount:  countRow(h.container.UniverseDB, "SELECT COUNT(*) FROM securities"),
		AccountCount:   countRow(h.container.LedgerDB, "SELECT COUNT(*) FROM accounts"),
		OpenTradeCount: countRow(h.container.LedgerDB, "SELECT COUNT(*) FROM trades WHERE sell_date IS NULL"),
		HolidayCount:   countRow(h.container.UniverseDB, "SELECT COUNT(*) FROM holidays"),
		Goroutines:     runtime.NumGoroutine(),
		CPUPercent:     cpuPercent,
		MemoryPercent:  memPercent,
		DiskFreeMB:     h.getDiskFreeMB(),
	}
	response.Status = status

	writeJSON(w, http.StatusOK, response, h.log)
}

// HandleDatabaseStats returns size and health of each database
// GET /api/system/databases
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := DatabaseStatsResponse{
		Databases:   make([]DBInfo, 0, 3),
		LastChecked: time.Now().Format(time.RFC3339),
	}

	for _, db := range []*database.DB{h.container.LedgerDB, h.container.UniverseDB, h.container.ConfigDB} {
		info := DBInfo{Name: db.Name(), Path: db.Path(), Healthy: true}
		if stat, err := os.Stat(db.Path()); err == nil {
			info.SizeMB = float64(stat.Size()) / 1024 / 1024
		}
		if err := db.QuickCheck(ctx); err != nil {
			info.Healthy = false
			info.Error = err.Error()
		}
		response.TotalSizeMB += info.SizeMB
		response.Databases = append(response.Databases, info)
	}

	writeJSON(w, http.StatusOK, response, h.log)
}

// HandleTriggerHolidaySync runs the holiday sync job immediately
// POST /api/system/jobs/holiday-sync
func (h *SystemHandlers) HandleTriggerHolidaySync(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.jobs.HolidaySync == nil {
		writeError(w, http.StatusServiceUnavailable, "holiday sync job not registered", h.log)
		return
	}
	h.runJob(w, h.jobs.HolidaySync)
}

// HandleTriggerDatabaseMaintenance runs the database maintenance job immediately
// POST /api/system/jobs/database-maintenance
func (h *SystemHandlers) HandleTriggerDatabaseMaintenance(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil || h.jobs.DatabaseMaintenance == nil {
		writeError(w, http.StatusServiceUnavailable, "database maintenance job not registered", h.log)
		return
	}
	h.runJob(w, h.jobs.DatabaseMaintenance)
}

func (h *SystemHandlers) runJob(w http.ResponseWriter, job scheduler.Job) {
	var err error
	if h.container.Scheduler != nil {
		err = h.container.Scheduler.RunNow(job)
	} else {
		err = job.Run()
	}
	if err != nil {
		h.log.Error().Err(err).Str("job", job.Name()).Msg("Manual job run failed")
		writeError(w, http.StatusInternalServerError, err.Error(), h.log)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": job.Name() + " completed",
	}, h.log)
}

// getSystemStats returns CPU and RAM usage percentages.
// CPU is sampled over 100ms to keep the call fast.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

func (h *SystemHandlers) getDiskFreeMB() float64 {
	usage, err := disk.Usage(h.dataDir)
	if err != nil {
		h.log.Warn().Err(err).Str("path", h.dataDir).Msg("Failed to get disk usage")
		return 0
	}
	return float64(usage.Free) / 1024 / 1024
}
