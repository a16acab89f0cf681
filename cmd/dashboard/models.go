package main

// Wire shapes mirrored from the API. The dashboard never owns entity state;
// everything below is fetched, rendered, and thrown away on the next load.

type Dataset struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Size        string `json:"size"`
	Status      string `json:"status"`
	ContentID   string `json:"contentId"`
	UploadedAt  string `json:"uploadedAt"`
}

type Model struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ContentID   string `json:"contentId"`
	CreatedAt   string `json:"createdAt"`
}

type Relationship struct {
	ID        uint64 `json:"id"`
	DatasetID uint64 `json:"datasetId"`
	ModelID   uint64 `json:"modelId"`
	Status    string `json:"status"`
	UsageDate string `json:"usageDate"`
}
