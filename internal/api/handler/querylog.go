package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wsentinels/sentinelchat/internal/api/middleware"
	"github.com/wsentinels/sentinelchat/internal/api/request"
	"github.com/wsentinels/sentinelchat/internal/api/response"
	"github.com/wsentinels/sentinelchat/internal/export"
	"github.com/wsentinels/sentinelchat/internal/model"
	"github.com/wsentinels/sentinelchat/internal/services/querylog"
)

// QueryLogHandler handles query-log endpoints
type QueryLogHandler struct {
	queryLogService *querylog.Service
	csvExporter     *export.CSVExporter
	pdfExporter     *export.PDFExporter
}

// NewQueryLogHandler creates a new query-log handler
func NewQueryLogHandler(queryLogService *querylog.Service) *QueryLogHandler {
	return &QueryLogHandler{
		queryLogService: queryLogService,
		csvExporter:     export.NewCSVExporter(),
		pdfExporter:     export.NewPDFExporter(),
	}
}

// List handles GET /api/v1/queries
// Entries are insertion-ordered; order=desc returns newest first.
func (h *QueryLogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if r.URL.Query().Get("order") == "desc" {
		reverse(entries)
	}

	response.JSON(w, http.StatusOK, response.QueryLogResponseFromModel(entries))
}

// UpdateTail handles PATCH /api/v1/queries/tail
func (h *QueryLogHandler) UpdateTail(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	status, err := model.ParseQueryStatus(req.Status)
	if err != nil {
		WriteError(w, err)
		return
	}

	current := middleware.MustGetChatSession(r.Context())
	if err := h.queryLogService.UpdateTail(r.Context(), current.ID, status, req.Note); err != nil {
		WriteError(w, err)
		return
	}

	entries, err := h.queryLogService.Entries(r.Context(), current.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	tail := len(entries) - 1
	if tail < 0 {
		response.NoContent(w)
		return
	}
	response.JSON(w, http.StatusOK, response.QueryLogEntryFromModel(entries[tail]))
}

// Export handles GET /api/v1/queries/export
func (h *QueryLogHandler) Export(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json":
		response.JSON(w, http.StatusOK, response.QueryLogResponseFromModel(entries))
	case "csv":
		out, err := h.csvExporter.Render(export.QueryLogDataset(entries))
		if err != nil {
			WriteError(w, err)
			return
		}
		writeAttachment(w, out, "text/csv", "query_log.csv")
	case "pdf":
		out, err := h.pdfExporter.Render(export.QueryLogDataset(entries), "Sentinels Query Log")
		if err != nil {
			WriteError(w, err)
			return
		}
		writeAttachment(w, out, "application/pdf", "query_log.pdf")
	default:
		WriteError(w, NewInvalidRequestError(fmt.Sprintf("unknown export format %q", format)))
	}
}

func (h *QueryLogHandler) entries(r *http.Request) ([]model.QueryLogEntry, error) {
	current := middleware.MustGetChatSession(r.Context())
	return h.queryLogService.Entries(r.Context(), current.ID)
}

func writeAttachment(w http.ResponseWriter, body []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func reverse(entries []model.QueryLogEntry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
