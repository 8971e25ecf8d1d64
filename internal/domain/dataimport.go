// internal/domain/dataimport.go
package domain

import "time"

// ImportTemplate describes a downloadable import template for one data type
type ImportTemplate struct {
	DataType    string   `json:"data_type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

// ImportJob tracks an uploaded data file through validation and processing
type ImportJob struct {
	ID           int64     `json:"id"`
	DataType     string    `json:"data_type"`
	Filename     string    `json:"filename"`
	Status       string    `json:"status"`
	TotalRows    int       `json:"total_rows"`
	ImportedRows int       `json:"imported_rows"`
	ErrorRows    int       `json:"error_rows"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportLog is a single row-level message from an import job
type ImportLog struct {
	ID       int64  `json:"id"`
	JobID    int64  `json:"job"`
	RowIndex int    `json:"row_index"`
	Level    string `json:"level"`
	Message  string `json:"message"`
}
