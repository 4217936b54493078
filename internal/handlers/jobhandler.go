package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobtrackr/backend/internal/dtos"
	"github.com/jobtrackr/backend/internal/models"
	"github.com/jobtrackr/backend/internal/parser"
	"github.com/jobtrackr/backend/internal/services"
)

// JobHandler wires the extraction pipeline and job CRUD to HTTP.
type JobHandler struct {
	LLM      *services.LLMService
	Jobs     *services.JobService
	Usage    *services.UsageService
	Analysis *services.AnalysisService
}

func NewJobHandler(llm *services.LLMService, jobs *services.JobService, usage *services.UsageService, analysis *services.AnalysisService) *JobHandler {
	return &JobHandler{LLM: llm, Jobs: jobs, Usage: usage, Analysis: analysis}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RequireUser resolves the caller's identity. Auth proper lives in front
// of this service; here the opaque user id arrives as a header.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 32)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid X-User-ID header"})
			return
		}
		c.Set("userID", uint(id))
		c.Next()
	}
}

func userID(c *gin.Context) uint {
	return c.GetUint("userID")
}

// Preparse is POST /jobs/preparse: reduce raw listing HTML for a later
// extraction call.
func (h *JobHandler) Preparse(c *gin.Context) {
	var req dtos.PreparseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	reduced := parser.Reduce(req.HTMLContent, req.URL)
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"parsed_text": reduced.Content,
		"url":         req.URL,
		"portal":      reduced.Portal,
		"title":       reduced.StructuredData["title"],
		"company":     reduced.StructuredData["company"],
		"location":    reduced.StructuredData["location"],
		"job_type":    reduced.StructuredData["job_type"],
		"raw_data":    reduced,
	})
}

// Extract is POST /jobs/extract: run the LLM stage over already-reduced
// text. The response always carries a complete listing; the outcome tag
// tells the caller whether it was parsed, repaired or mocked.
func (h *JobHandler) Extract(c *gin.Context) {
	var req dtos.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	uid := userID(c)
	plan := h.Jobs.UserPlan(uid)
	if !h.Usage.Allow(c.Request.Context(), uid, plan) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "monthly extraction limit reached for your plan"})
		return
	}

	extraction := h.LLM.Extract(c.Request.Context(), req.ParsedText, parser.Hints{
		URL:      req.URL,
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		JobType:  req.JobType,
		Portal:   req.Portal,
	})
	h.Usage.Record(c.Request.Context(), uid)

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"parsed_job_data": extraction,
	})
}

// Workflow is POST /jobs/workflow: the extension's single-call path.
// Reduce the HTML, extract a listing, persist it.
func (h *JobHandler) Workflow(c *gin.Context) {
	var req dtos.WorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	uid := userID(c)
	plan := h.Jobs.UserPlan(uid)
	if !h.Usage.Allow(c.Request.Context(), uid, plan) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "monthly extraction limit reached for your plan"})
		return
	}

	reduced := parser.Reduce(req.HTMLContent, req.URL)
	if reduced.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract content from HTML."})
		return
	}

	title := reduced.StructuredData["title"]
	if title == "" {
		title = req.Title
	}
	extraction := h.LLM.Extract(c.Request.Context(), reduced.Content, parser.Hints{
		URL:      req.URL,
		Title:    title,
		Company:  reduced.StructuredData["company"],
		Location: reduced.StructuredData["location"],
		JobType:  reduced.StructuredData["job_type"],
		Portal:   reduced.Portal,
	})
	h.Usage.Record(c.Request.Context(), uid)

	job := &models.Job{
		Position:    extraction.Position,
		Company:     extraction.Company,
		Location:    extraction.Location,
		Salary:      extraction.Salary,
		JobType:     extraction.JobType,
		Link:        extraction.Link,
		Description: extraction.Description,
		Status:      models.StatusSaved,
	}
	if err := h.Jobs.Create(uid, job, services.LimitsFor(plan)); err != nil {
		if errors.Is(err, services.ErrStoreLimit) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"job":     job,
		"outcome": extraction.Outcome,
	})
}

// Analyze is POST /jobs/analyze: detailed skill/qualification breakdown
// of a job description for CV tailoring.
func (h *JobHandler) Analyze(c *gin.Context) {
	var req dtos.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	analysis := h.Analysis.Analyze(c.Request.Context(), req.Description, req.Content)
	c.JSON(http.StatusOK, gin.H{"status": "success", "analysis": analysis})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	uid := userID(c)
	job := &models.Job{
		Position:    req.Position,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		JobType:     req.JobType,
		Status:      req.Status,
		Link:        req.Link,
		Description: req.Description,
		Notes:       req.Notes,
	}
	err := h.Jobs.Create(uid, job, services.LimitsFor(h.Jobs.UserPlan(uid)))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStoreLimit):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	filters := services.JobFilters{
		Status:   c.Query("status"),
		JobType:  c.Query("job_type"),
		Company:  c.Query("company"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
	}

	result, err := h.Jobs.List(userID(c), filters, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *JobHandler) StatusCounts(c *gin.Context) {
	counts, err := h.Jobs.CountByStatus(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count jobs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	job, err := h.Jobs.Get(userID(c), uint(jobID))
	if errors.Is(err, services.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.Jobs.Update(userID(c), uint(jobID), &req)
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, job)
	}
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	err = h.Jobs.Delete(userID(c), uint(jobID))
	if errors.Is(err, services.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) DeleteAllJobs(c *gin.Context) {
	deleted, err := h.Jobs.DeleteAll(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"deleted_count": deleted,
	})
}
