// internal/repository/rest/dataimport.go
package rest

import (
	"context"
	"fmt"
	"io"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
)

type DataImport struct {
	api *client.Client
}

func NewDataImport(api *client.Client) *DataImport {
	return &DataImport{api: api}
}

var _ repository.DataImportRepository = (*DataImport)(nil)

func (r *DataImport) Upload(ctx context.Context, dataType, filename string, reader io.Reader) (*domain.ImportJob, error) {
	var job domain.ImportJob
	extra := map[string]string{"data_type": dataType}
	if err := r.api.Upload(ctx, "/data-import/upload/", "file", filename, reader, extra, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *DataImport) ListTemplates(ctx context.Context) ([]domain.ImportTemplate, error) {
	var templates []domain.ImportTemplate
	if err := r.api.Get(ctx, "/data-import/templates/", &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *DataImport) ListHistory(ctx context.Context, opts repository.ListOptions) (client.Page[domain.ImportJob], error) {
	return list[domain.ImportJob](ctx, r.api, "/data-import/history/", opts)
}

func (r *DataImport) Validate(ctx context.Context, jobID int64) (*domain.ImportJob, error) {
	return action[domain.ImportJob](ctx, r.api, fmt.Sprintf("/data-import/validate/%d/", jobID))
}

func (r *DataImport) ListLogs(ctx context.Context, jobID int64) ([]domain.ImportLog, error) {
	var logs []domain.ImportLog
	if err := r.api.Get(ctx, fmt.Sprintf("/data-import/logs/%d/", jobID), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
