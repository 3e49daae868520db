package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/render"

	"github.com/KaramelBytes/dataloom/internal/eda"
	"github.com/KaramelBytes/dataloom/internal/loader"
)

// RunPipelineRequest is the body of POST /api/pipeline/run. At least one of
// the two inputs must be provided.
type RunPipelineRequest struct {
	TabularPath string `json:"tabular_path" validate:"required_without=PDFFolder"`
	PDFFolder   string `json:"pdf_folder" validate:"required_without=TabularPath"`
}

// RunPipelineResponse mirrors the pipeline result. ReportMarkdown may carry
// a degraded narrative marked with the failure prefix; that is still a
// successful run.
type RunPipelineResponse struct {
	RunID          string            `json:"run_id"`
	RawRows        int               `json:"raw_rows,omitempty"`
	RawColumns     int               `json:"raw_columns,omitempty"`
	CleanedRows    int               `json:"cleaned_rows,omitempty"`
	CleanedColumns int               `json:"cleaned_columns,omitempty"`
	Columns        []string          `json:"columns,omitempty"`
	Summary        *eda.Summary      `json:"eda_summary,omitempty"`
	ReportMarkdown string            `json:"eda_report_markdown,omitempty"`
	PDFSummaries   map[string]string `json:"pdf_summaries,omitempty"`
	CombinedPDFs   string            `json:"combined_pdf_summary,omitempty"`
	Executive      string            `json:"executive_report_markdown,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok", "message": "service is running"})
}

func (s *Server) handleRunPipeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RunPipelineRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.renderError(w, r, newAPIError(http.StatusBadRequest, "INVALID_REQUEST", "invalid request body"))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.renderError(w, r, newAPIError(http.StatusBadRequest, "VALIDATION_FAILED",
			"tabular_path or pdf_folder is required"))
		return
	}
	if req.TabularPath != "" {
		if loader.DetectFileType(req.TabularPath) != loader.TypeCSV &&
			loader.DetectFileType(req.TabularPath) != loader.TypeExcel {
			s.renderError(w, r, newAPIError(http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
				"tabular_path must be a CSV or Excel file"))
			return
		}
		if _, err := os.Stat(req.TabularPath); errors.Is(err, os.ErrNotExist) {
			s.renderError(w, r, newAPIError(http.StatusBadRequest, "FILE_NOT_FOUND",
				"tabular_path does not exist: "+req.TabularPath))
			return
		}
	}

	res, err := s.runner.Run(ctx, req.TabularPath, req.PDFFolder)
	if err != nil {
		s.logger.ErrorContext(ctx, "pipeline run failed", slog.String("error", err.Error()))
		s.renderError(w, r, newAPIError(http.StatusInternalServerError, "PIPELINE_FAILED",
			"pipeline execution failed: "+err.Error()))
		return
	}

	resp := RunPipelineResponse{RunID: res.RunID, Executive: res.Executive}
	if tab := res.Tabular; tab != nil {
		resp.RawRows = tab.Raw.Rows()
		resp.RawColumns = len(tab.Raw.Cols)
		resp.CleanedRows = tab.Cleaned.Rows()
		resp.CleanedColumns = len(tab.Cleaned.Cols)
		resp.Columns = tab.Cleaned.ColumnNames()
		resp.Summary = tab.Summary
		resp.ReportMarkdown = tab.ReportMarkdown
	}
	if pdfs := res.PDFs; pdfs != nil {
		resp.PDFSummaries = pdfs.Summaries
		resp.CombinedPDFs = pdfs.Combined
	}
	render.JSON(w, r, resp)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, apiErr *APIError) {
	if err := render.Render(w, r, apiErr); err != nil {
		s.logger.ErrorContext(r.Context(), "render error response", slog.String("error", err.Error()))
	}
}
