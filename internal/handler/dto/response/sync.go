package response

import "productpraat/internal/storage"

type SyncJobResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	StartedAt      int64  `json:"started_at"`
	CompletedAt    *int64 `json:"completed_at,omitempty"`
	ItemsProcessed int    `json:"items_processed"`
	ItemsFailed    int    `json:"items_failed"`
	Error          string `json:"error,omitempty"`
}

func FromSyncJob(job *storage.SyncJobRecord) *SyncJobResponse {
	resp := &SyncJobResponse{
		ID:             job.ID.String(),
		Type:           string(job.Type),
		Status:         string(job.Status),
		StartedAt:      job.StartedAt.Unix(),
		ItemsProcessed: job.ItemsProcessed,
		ItemsFailed:    job.ItemsFailed,
		Error:          job.Error,
	}
	if job.CompletedAt != nil {
		completed := job.CompletedAt.Unix()
		resp.CompletedAt = &completed
	}
	return resp
}

func FromSyncJobs(jobs []storage.SyncJobRecord) []*SyncJobResponse {
	res := make([]*SyncJobResponse, len(jobs))
	for i := range jobs {
		res[i] = FromSyncJob(&jobs[i])
	}
	return res
}
