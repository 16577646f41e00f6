package api

// ClaimRequest asks the coordinator to assign an available record.
type ClaimRequest struct {
	Identity string `json:"identity"`
}

// RecordField is one labeled value shown to the reviewer.
type RecordField struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	Value  string `json:"value"`
}

// ClaimResponse describes a freshly claimed record.
type ClaimResponse struct {
	Row       int           `json:"row"`
	SheetRow  int           `json:"sheetRow"`
	ClaimedBy string        `json:"claimedBy"`
	ClaimedAt string        `json:"claimedAt"`
	Fields    []RecordField `json:"fields"`
}

// SubmissionRequest finalizes a claimed record with the reviewer's
// prediction.
type SubmissionRequest struct {
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail"`
	Outcome       string `json:"outcome"`
	Confidence    string `json:"confidence"`
	Score         int    `json:"score"`
}

// RecordSummary is the administrative view of one record row.
type RecordSummary struct {
	Row          int    `json:"row"`
	SheetRow     int    `json:"sheetRow"`
	Status       string `json:"status"`
	ClaimedBy    string `json:"claimedBy,omitempty"`
	ClaimedAt    string `json:"claimedAt,omitempty"`
	ReviewerName string `json:"reviewerName,omitempty"`
	SubmittedAt  string `json:"submittedAt,omitempty"`
	Outcome      string `json:"outcome,omitempty"`
	Confidence   string `json:"confidence,omitempty"`
	Score        string `json:"score,omitempty"`
}

// RecordListResponse wraps the record summaries.
type RecordListResponse struct {
	Records []RecordSummary `json:"records"`
}

// StatsResponse reports record counts by review state.
type StatsResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Claimed   int `json:"claimed"`
	Submitted int `json:"submitted"`
}

// ReclaimResponse reports how many stale claims were released.
type ReclaimResponse struct {
	Released int `json:"released"`
}

// StatusResponse aggregates daemon runtime information.
type StatusResponse struct {
	Running      bool          `json:"running"`
	PID          int           `json:"pid"`
	DatabasePath string        `json:"databasePath"`
	LockFilePath string        `json:"lockFilePath"`
	Stats        StatsResponse `json:"stats"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
