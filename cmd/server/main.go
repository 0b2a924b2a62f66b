package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Spanday31/GPT-CVD-01/internal/export"
	"github.com/Spanday31/GPT-CVD-01/internal/logging"
	"github.com/Spanday31/GPT-CVD-01/internal/report"
	"github.com/Spanday31/GPT-CVD-01/internal/riskcalc"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Port        string
	DatabaseURL string
	EnableDB    bool
}

// PatientInput is the wire form of a patient case. The vascular-disease
// count is derived from the three disease flags when any is set; a bare
// vascCount (as produced by a re-loaded case record) is used otherwise.
type PatientInput struct {
	Name      string  `json:"name"`
	Age       int     `json:"age"`
	Sex       string  `json:"sex"`
	SBP       int     `json:"sbp"`
	TotalChol float64 `json:"totalChol"`
	HDL       float64 `json:"hdl"`
	LDL       float64 `json:"ldl"`
	Smoker    bool    `json:"smoker"`
	Diabetic  bool    `json:"diabetic"`
	EGFR      int     `json:"egfr"`
	CRP       float64 `json:"crp"`
	CAD       bool    `json:"cad"`
	StrokeTIA bool    `json:"strokeTia"`
	PAD       bool    `json:"pad"`
	VascCount int     `json:"vascCount"`
}

func (in PatientInput) profile() riskcalc.Profile {
	vascCount := in.VascCount
	if in.CAD || in.StrokeTIA || in.PAD {
		vascCount = 0
		for _, flag := range []bool{in.CAD, in.StrokeTIA, in.PAD} {
			if flag {
				vascCount++
			}
		}
	}
	return riskcalc.Profile{
		Age:       in.Age,
		Sex:       riskcalc.Sex(in.Sex),
		SBP:       in.SBP,
		TotalChol: in.TotalChol,
		HDL:       in.HDL,
		LDL:       in.LDL,
		Smoker:    in.Smoker,
		Diabetic:  in.Diabetic,
		EGFR:      in.EGFR,
		CRP:       in.CRP,
		VascCount: vascCount,
	}
}

type EvaluateRequest struct {
	Patient  PatientInput     `json:"patient"`
	Current  riskcalc.Regimen `json:"current"`
	Proposed riskcalc.Regimen `json:"proposed"`
}

type EvaluateResponse struct {
	ID string `json:"id"`
	riskcalc.Result
}

func main() {
	gin.SetMode(getEnv("GIN_MODE", "release"))
	logger := logging.Logger(logging.SourceApp)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("config error", "error", err)
	}

	ctx := context.Background()
	var db HealthChecker
	if cfg.EnableDB {
		db, err = connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("database connection failed", "error", err)
		}
		defer db.(interface{ Close() }).Close()
	}

	staticRoot := detectStaticRoot()
	router := setupRouter(db, staticRoot)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	waitForShutdown(server)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	return cfg, nil
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func setupRouter(db HealthChecker, staticRoot string) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	// Serve the form shell from the repository root under /static and root index.
	router.Static("/static", staticRoot)
	router.StaticFile("/", filepath.Join(staticRoot, "index.html"))
	router.StaticFile("/styles.css", filepath.Join(staticRoot, "styles.css"))
	router.StaticFile("/app.js", filepath.Join(staticRoot, "app.js"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := db.Ping(ctx); err != nil {
			dbStatus = fmt.Sprintf("unhealthy: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     dbStatus,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     dbStatus,
		})
	})

	router.GET("/api/therapies", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"statins": riskcalc.StatinOptions(),
			"addOns":  riskcalc.AddOnOptions(),
		})
	})

	router.POST("/api/risk/evaluate", handleEvaluate)
	router.POST("/api/risk/report", handleReport)
	router.POST("/api/case/export", handleExportCase)
	router.POST("/api/case/import", handleImportCase)

	return router
}

// bindAndEvaluate handles the shared request path of the evaluate and
// report endpoints. A false return means a response was already written.
func bindAndEvaluate(c *gin.Context) (EvaluateRequest, riskcalc.Result, bool) {
	var payload EvaluateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return EvaluateRequest{}, riskcalc.Result{}, false
	}

	profile := payload.Patient.profile()
	if problems := profile.Validate(); len(problems) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": problems,
		})
		return EvaluateRequest{}, riskcalc.Result{}, false
	}

	result, err := riskcalc.Evaluate(profile, payload.Current, payload.Proposed)
	if err != nil {
		if errors.Is(err, riskcalc.ErrInvalidInput) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation_failed",
				"details": []string{err.Error()},
			})
			return EvaluateRequest{}, riskcalc.Result{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "evaluation failed"})
		return EvaluateRequest{}, riskcalc.Result{}, false
	}

	return payload, result, true
}

func handleEvaluate(c *gin.Context) {
	_, result, ok := bindAndEvaluate(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, EvaluateResponse{ID: uuid.NewString(), Result: result})
}

func handleReport(c *gin.Context) {
	payload, result, ok := bindAndEvaluate(c)
	if !ok {
		return
	}

	profile := payload.Patient.profile()
	now := time.Now()
	document, err := report.Build(report.Data{
		Patient: report.Patient{
			Name: payload.Patient.Name,
			Age:  profile.Age,
			Sex:  profile.Sex,
		},
		Result:      result,
		History:     report.LDLHistory(profile.LDL, result.ProjectedLDL, 6, now),
		GeneratedAt: now,
	})
	if err != nil {
		logging.Logger(logging.SourceReport).Error("report rendering failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		return
	}

	filename := fmt.Sprintf("cvd-report-%s.html", uuid.NewString())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/html; charset=utf-8", document)
}

func handleExportCase(c *gin.Context) {
	var payload PatientInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	record, err := export.Marshal(payload.profile())
	if err != nil {
		logging.Logger(logging.SourceWeb).Error("case export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "case export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cvd-case.env"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(record))
}

func handleImportCase(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	profile, err := export.Parse(string(raw))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid_case_record",
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, PatientInput{
		Age:       profile.Age,
		Sex:       string(profile.Sex),
		SBP:       profile.SBP,
		TotalChol: profile.TotalChol,
		HDL:       profile.HDL,
		LDL:       profile.LDL,
		Smoker:    profile.Smoker,
		Diabetic:  profile.Diabetic,
		EGFR:      profile.EGFR,
		CRP:       profile.CRP,
		VascCount: profile.VascCount,
	})
}

func waitForShutdown(server *http.Server) {
	logger := logging.Logger(logging.SourceApp)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "."
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "index.html")) {
			return dir
		}
	}

	return startDir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
