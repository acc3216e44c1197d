package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/observability/logger"
	"github.com/ranjanashish/leh-registry/internal/service"
)

// RecordsController expone el CRUD de registros LEH. El body de submit y
// update se decodifica como mapa crudo: la normalización (defaults "N/A",
// quantity, validity) vive en el servicio, no acá.
type RecordsController struct {
	records *service.Records
}

func NewRecordsController(records *service.Records) *RecordsController {
	return &RecordsController{records: records}
}

// Submit: POST /leh-data
func (c *RecordsController) Submit(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !ReadJSON(w, r, &raw) {
		return
	}

	_, err := c.records.Submit(r.Context(), raw)
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, true, "LEH data submitted")
	case repository.IsInvalidInput(err):
		writeStatus(w, http.StatusBadRequest, false, "Location is required")
	default:
		logger.From(r.Context()).Error("submit record failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Submission error")
	}
}

// List: GET /leh-data
func (c *RecordsController) List(w http.ResponseWriter, r *http.Request) {
	records, err := c.records.All(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("list records failed", logger.Err(err))
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}
	if records == nil {
		records = []repository.Record{}
	}
	WriteJSON(w, http.StatusOK, records)
}

// ByLocation: GET /leh-data/location/{location}
func (c *RecordsController) ByLocation(w http.ResponseWriter, r *http.Request) {
	records, err := c.records.ByLocation(r.Context(), chi.URLParam(r, "location"))
	if err != nil {
		logger.From(r.Context()).Error("list records by location failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Fetch error")
		return
	}
	if records == nil {
		records = []repository.Record{}
	}
	WriteJSON(w, http.StatusOK, records)
}

// Get: GET /leh-data/id/{id}
func (c *RecordsController) Get(w http.ResponseWriter, r *http.Request) {
	record, err := c.records.ByID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, record)
	case repository.IsInvalidID(err):
		writeStatus(w, http.StatusBadRequest, false, "Invalid ID format")
	case repository.IsNotFound(err):
		writeStatus(w, http.StatusNotFound, false, "Not found")
	default:
		logger.From(r.Context()).Error("get record failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Fetch error")
	}
}

// Update: PUT /leh-data/id/{id}
// El update es reemplazo completo: re-normaliza el body como en submit.
func (c *RecordsController) Update(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !ReadJSON(w, r, &raw) {
		return
	}

	err := c.records.Update(r.Context(), chi.URLParam(r, "id"), raw)
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, true, "")
	case repository.IsInvalidID(err):
		writeStatus(w, http.StatusBadRequest, false, "Invalid ID format")
	case repository.IsInvalidInput(err):
		writeStatus(w, http.StatusBadRequest, false, "Location is required")
	case repository.IsNotFound(err):
		writeStatus(w, http.StatusNotFound, false, "Entry not found")
	default:
		logger.From(r.Context()).Error("update record failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Update error")
	}
}

// Delete: DELETE /leh-data/id/{id}
// Idempotente: borrar un id inexistente (o malformado) responde success=true.
func (c *RecordsController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.records.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil, repository.IsInvalidID(err):
		writeStatus(w, http.StatusOK, true, "")
	default:
		logger.From(r.Context()).Error("delete record failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Delete error")
	}
}
