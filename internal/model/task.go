package model

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// EditorTask is the unit of work the API pushes onto the Redis queue and the
// worker pops. It mirrors the synchronous request body, so both paths run the
// same resolution and dispatch steps.
type EditorTask struct {
	TaskID      string `json:"task_id"`
	RowID       int64  `json:"row_id"`
	Tool        string `json:"tool"`
	Date        string `json:"date"`
	JournalName string `json:"journal_name,omitempty"`
	Text        string `json:"text,omitempty"`
}

// TaskState is the worker's report in the result backend, read by pollers.
type TaskState struct {
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
