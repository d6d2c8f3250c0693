package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"timeTracker/internal/dragdrop"
	"timeTracker/internal/handlers/dto"
	"timeTracker/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SheetHandler struct {
	SheetService Service
}

func NewSheetHandler(sheetService Service) SheetHandler {
	return SheetHandler{
		SheetService: sheetService,
	}
}

func (s *SheetHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.SheetService.HealthCheck(r.Context()); err != nil {
		responseWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	healthCheck(w)
}

func (s *SheetHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userName := chi.URLParam(r, "name")

	groups, summary, err := s.SheetService.GetSheet(r.Context(), userName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "get_sheet"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: sheet returned",
		zap.String("user", userName),
		zap.Int("groups", len(groups)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	response := dto.ToSheetResponse(groups, summary)
	responseWithJSON(w, http.StatusOK,
		toPayload("groups", response.Groups),
		toPayload("summary", response.Summary))
}

func (s *SheetHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: wrong content type",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if request.Date == "" {
		logger.Warn("HTTP: validation failed",
			zap.String("field", "date"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "date must not be empty")
		return
	}

	if !checkDate(request.Date) {
		logger.Warn("HTTP: validation failed",
			zap.String("field", "date"),
			zap.String("error", "wrong_format"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY")
		return
	}

	userName := chi.URLParam(r, "name")

	groups, summary, err := s.SheetService.AddTask(r.Context(), userName, request.Date, request.Hours, request.Description, request.Finished)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "add_task"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task created",
		zap.String("user", userName),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) PostTaskToGroup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request dto.AddToGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	userName := chi.URLParam(r, "name")
	groupID := chi.URLParam(r, "groupId")

	groups, summary, err := s.SheetService.AddTaskToGroup(r.Context(), userName, groupID, request.Hours, request.Description)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "add_task_to_group"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task appended to group",
		zap.String("user", userName),
		zap.String("group_id", groupID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid update payload: "+err.Error())
		return
	}

	if request.Field == "" {
		logger.Warn("HTTP: validation failed",
			zap.String("field", "field"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "field must not be empty")
		return
	}

	// A manual date edit has to be a recognized format; the edit is
	// reverted client-side and the user re-prompted.
	if request.Field == "date" && !checkDate(request.Value) {
		logger.Warn("HTTP: validation failed",
			zap.String("field", "date"),
			zap.String("error", "wrong_format"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY")
		return
	}

	userName := chi.URLParam(r, "name")
	groupID := chi.URLParam(r, "groupId")
	taskID := chi.URLParam(r, "taskId")

	groups, summary, err := s.SheetService.UpdateTaskField(r.Context(), userName, groupID, taskID, request.Field, request.Value)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "update_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task updated",
		zap.String("user", userName),
		zap.String("task_id", taskID),
		zap.String("field", request.Field),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) UpdateTaskDate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.UpdateDateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid update payload: "+err.Error())
		return
	}

	if !checkDate(request.Date) {
		logger.Warn("HTTP: validation failed",
			zap.String("field", "date"),
			zap.String("error", "wrong_format"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "date must be YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY")
		return
	}

	userName := chi.URLParam(r, "name")
	groupID := chi.URLParam(r, "groupId")
	taskID := chi.URLParam(r, "taskId")

	groups, summary, err := s.SheetService.UpdateTaskDate(r.Context(), userName, groupID, taskID, request.Date)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "update_task_date"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task date changed",
		zap.String("user", userName),
		zap.String("task_id", taskID),
		zap.String("new_date", request.Date),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userName := chi.URLParam(r, "name")
	groupID := chi.URLParam(r, "groupId")
	taskID := chi.URLParam(r, "taskId")

	groups, summary, err := s.SheetService.DeleteTask(r.Context(), userName, groupID, taskID)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "delete_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task deleted",
		zap.String("user", userName),
		zap.String("task_id", taskID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid move payload: "+err.Error())
		return
	}

	userName := chi.URLParam(r, "name")

	groups, summary, err := s.SheetService.MoveTask(r.Context(), userName, request.FromGroupID, request.TaskID, request.ToGroupID)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "move_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task moved",
		zap.String("user", userName),
		zap.String("task_id", request.TaskID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) ReorderTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.ReorderTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid reorder payload: "+err.Error())
		return
	}

	userName := chi.URLParam(r, "name")

	groups, summary, err := s.SheetService.ReorderTask(r.Context(), userName, request.GroupID, request.FromIndex, request.ToIndex)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "reorder_task"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: task reordered",
		zap.String("user", userName),
		zap.String("group_id", request.GroupID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) ReorderGroups(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.ReorderGroupsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid reorder payload: "+err.Error())
		return
	}

	userName := chi.URLParam(r, "name")

	groups, summary, err := s.SheetService.ReorderGroups(r.Context(), userName, request.FromIndex, request.ToIndex)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "reorder_groups"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: groups reordered",
		zap.String("user", userName),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) Drop(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.DropRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: failed to read JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "invalid drop payload: "+err.Error())
		return
	}

	var kind dragdrop.Kind
	switch request.Source.Kind {
	case "group":
		kind = dragdrop.KindGroup
	case "task":
		kind = dragdrop.KindTask
	default:
		logger.Warn("HTTP: validation failed",
			zap.String("field", "source.kind"),
			zap.String("error", "wrong_value"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "source.kind must be 'group' or 'task'")
		return
	}

	userName := chi.URLParam(r, "name")

	source := dragdrop.Source{
		Kind:       kind,
		GroupIndex: request.Source.GroupIndex,
		TaskIndex:  request.Source.TaskIndex,
	}
	target := dragdrop.Target{
		GroupIndex: request.Target.GroupIndex,
		TaskIndex:  request.Target.TaskIndex,
	}

	groups, summary, err := s.SheetService.ResolveDrop(r.Context(), userName, source, target)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "resolve_drop"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: drop resolved",
		zap.String("user", userName),
		zap.String("kind", request.Source.Kind),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userName := chi.URLParam(r, "name")

	summary, err := s.SheetService.Summary(r.Context(), userName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "get_summary"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: summary returned",
		zap.String("user", userName),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("summary", summary))
}

func (s *SheetHandler) Export(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userName := chi.URLParam(r, "name")

	document, err := s.SheetService.Export(r.Context(), userName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "export"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: sheet exported",
		zap.String("user", userName),
		zap.Int("bytes", len(document)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="tareas.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(document)
}

func (s *SheetHandler) Import(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	document, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		logger.Warn("HTTP: failed to read body",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "failed to read document: "+err.Error())
		return
	}

	userName := chi.URLParam(r, "name")

	groups, summary, err := s.SheetService.Import(r.Context(), userName, document)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "import"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: sheet imported",
		zap.String("user", userName),
		zap.Int("groups", len(groups)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK,
		toPayload("groups", groups),
		toPayload("summary", summary))
}

func (s *SheetHandler) Share(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userName := chi.URLParam(r, "name")

	text, err := s.SheetService.Share(r.Context(), userName)
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "share"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: share text returned",
		zap.String("user", userName),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// ClearSheet wipes the whole per-user collection. Destructive, so the
// request must carry confirm=true; without it nothing is touched.
func (s *SheetHandler) ClearSheet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if r.URL.Query().Get("confirm") != "true" {
		logger.Warn("HTTP: destructive operation without confirmation",
			zap.String("operation", "clear_sheet"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusConflict, "clearing all data requires confirm=true")
		return
	}

	userName := chi.URLParam(r, "name")

	if err := s.SheetService.ClearAll(r.Context(), userName); err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Service error", err,
			zap.String("operation", "clear_sheet"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("HTTP_OUT: sheet cleared",
		zap.String("user", userName),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}
