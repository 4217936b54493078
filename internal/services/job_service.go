package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jobtrackr/backend/internal/dtos"
	"github.com/jobtrackr/backend/internal/models"
	"github.com/jobtrackr/backend/internal/parser"
)

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrStoreLimit    = errors.New("job storage limit reached for plan")
	ErrInvalidStatus = errors.New("invalid job status")
)

// JobFilters narrows a job listing query. Empty fields are ignored.
type JobFilters struct {
	Status   string
	JobType  string
	Company  string
	Location string
	Search   string
}

// JobService is the persistence adapter. Every query is scoped to the
// owning user.
type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

func (s *JobService) Create(userID uint, job *models.Job, limits PlanLimits) error {
	if limits.MaxJobs > 0 {
		var count int64
		if err := s.DB.Model(&models.Job{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limits.MaxJobs) {
			return ErrStoreLimit
		}
	}
	job.UserID = userID
	if job.Position == "" {
		job.Position = "Untitled Position"
	}
	if job.Status == "" {
		job.Status = models.StatusSaved
	} else if !models.ValidStatus(job.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, job.Status)
	}
	job.JobType = parser.NormalizeJobType(job.JobType)
	return s.DB.Create(job).Error
}

func (s *JobService) Get(userID, jobID uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.Where("id = ? AND user_id = ?", jobID, userID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) List(userID uint, filters JobFilters, page, size int) (*dtos.PaginatedJobs, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	query := s.DB.Model(&models.Job{}).Where("user_id = ?", userID)
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.JobType != "" {
		query = query.Where("job_type = ?", filters.JobType)
	}
	if filters.Company != "" {
		query = query.Where("company ILIKE ?", "%"+filters.Company+"%")
	}
	if filters.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filters.Location+"%")
	}
	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query = query.Where(
			"position ILIKE ? OR company ILIKE ? OR description ILIKE ? OR location ILIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	pages := (total + int64(size) - 1) / int64(size)
	return &dtos.PaginatedJobs{
		Items: jobs,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}, nil
}

func (s *JobService) Update(userID, jobID uint, update *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.Get(userID, jobID)
	if err != nil {
		return nil, err
	}

	if update.Position != nil {
		job.Position = *update.Position
	}
	if update.Company != nil {
		job.Company = *update.Company
	}
	if update.Location != nil {
		job.Location = *update.Location
	}
	if update.Salary != nil {
		job.Salary = *update.Salary
	}
	if update.JobType != nil {
		job.JobType = parser.NormalizeJobType(*update.JobType)
	}
	if update.Status != nil {
		if !models.ValidStatus(*update.Status) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *update.Status)
		}
		job.Status = *update.Status
	}
	if update.Link != nil {
		job.Link = *update.Link
	}
	if update.Description != nil {
		job.Description = *update.Description
	}
	if update.Notes != nil {
		job.Notes = *update.Notes
	}

	if err := s.DB.Save(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Delete(userID, jobID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", jobID, userID).Delete(&models.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (s *JobService) DeleteAll(userID uint) (int64, error) {
	res := s.DB.Where("user_id = ?", userID).Delete(&models.Job{})
	return res.RowsAffected, res.Error
}

func (s *JobService) CountByStatus(userID uint) (*dtos.StatusCounts, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	err := s.DB.Model(&models.Job{}).
		Select("status, count(*) as n").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := &dtos.StatusCounts{}
	for _, r := range rows {
		counts.Total += r.N
		switch r.Status {
		case models.StatusSaved:
			counts.Saved = r.N
		case models.StatusApplied:
			counts.Applied = r.N
		case models.StatusInterview:
			counts.Interview = r.N
		case models.StatusOffer:
			counts.Offer = r.N
		case models.StatusRejected:
			counts.Rejected = r.N
		case models.StatusAccepted:
			counts.Accepted = r.N
		case models.StatusWithdrawn:
			counts.Withdrawn = r.N
		}
	}
	return counts, nil
}

// UserPlan looks up the plan of a user, defaulting to free.
func (s *JobService) UserPlan(userID uint) string {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil || user.Plan == "" {
		return "free"
	}
	return user.Plan
}
