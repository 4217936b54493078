package dtos

import "github.com/jobtrackr/backend/internal/models"

type PreparseRequest struct {
	HTMLContent string `json:"html_content" binding:"required"`
	URL         string `json:"url"`
}

type ExtractRequest struct {
	ParsedText string `json:"parsed_text" binding:"required"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Company    string `json:"company"`
	Location   string `json:"location"`
	JobType    string `json:"job_type"`
	Portal     string `json:"portal"`
}

// WorkflowRequest drives the single-call path the extension uses:
// reduce, extract, save.
type WorkflowRequest struct {
	URL         string `json:"url" binding:"required"`
	HTMLContent string `json:"html_content" binding:"required"`
	Title       string `json:"title"`
}

type JobCreateRequest struct {
	Position    string `json:"position" binding:"required"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	JobType     string `json:"job_type"`
	Status      string `json:"status"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// JobUpdateRequest carries partial updates; nil means "leave unchanged".
type JobUpdateRequest struct {
	Position    *string `json:"position"`
	Company     *string `json:"company"`
	Location    *string `json:"location"`
	Salary      *string `json:"salary"`
	JobType     *string `json:"job_type"`
	Status      *string `json:"status"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
}

type AnalyzeRequest struct {
	Description string `json:"description" binding:"required"`
	Content     string `json:"content"`
}

type PaginatedJobs struct {
	Items []models.Job `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
	Pages int64        `json:"pages"`
}

type StatusCounts struct {
	Saved     int64 `json:"Saved"`
	Applied   int64 `json:"Applied"`
	Interview int64 `json:"Interview"`
	Offer     int64 `json:"Offer"`
	Rejected  int64 `json:"Rejected"`
	Accepted  int64 `json:"Accepted"`
	Withdrawn int64 `json:"Withdrawn"`
	Total     int64 `json:"total"`
}
