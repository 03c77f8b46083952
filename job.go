package firedoc

// JobStatus is the lifecycle state of an asynchronous vendor job.
type JobStatus string

// JobStatus constants.
const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ParseJobStatus maps a vendor status string onto a JobStatus.
// Unrecognized non-empty values are treated as running.
func ParseJobStatus(s string) JobStatus {
	switch s {
	case "":
		return JobPending
	case "pending":
		return JobPending
	case "scraping", "running":
		return JobRunning
	case "completed":
		return JobCompleted
	case "failed", "cancelled":
		return JobFailed
	default:
		return JobRunning
	}
}

// IsTerminal reports whether the status can no longer change.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// CrawlJob is a snapshot of an asynchronous crawl or batch job.
type CrawlJob struct {
	ID          string
	Status      JobStatus
	Completed   int
	Total       int
	CreditsUsed int
	Pages       []*Page
}

// OnLastPage reports whether every page but one has completed.
func (j *CrawlJob) OnLastPage() bool {
	return j.Completed > 0 && j.Completed == j.Total-1
}
