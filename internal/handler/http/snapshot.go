package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-duty-report/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-duty-report/internal/handler/http/response"
)

type SnapshotHandler interface {
	// Manual sync of a period into the snapshot store
	Sync(w http.ResponseWriter, r *http.Request)
}

type snapshotHandlerImpl struct {
	snapshotService snapshot.SnapshotService
}

func NewSnapshotHandler(snapshotService snapshot.SnapshotService) SnapshotHandler {
	return &snapshotHandlerImpl{
		snapshotService: snapshotService,
	}
}

// Sync handles POST /snapshots/sync
func (h *snapshotHandlerImpl) Sync(w http.ResponseWriter, r *http.Request) {
	var req snapshot.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.snapshotService.Sync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance snapshots synced", result)
}
