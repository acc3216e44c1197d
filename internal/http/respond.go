package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// statusResponse es el sobre estándar de la API: {success, message}.
// message se omite cuando la respuesta es solo un flag de resultado.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WriteJSON: respuesta JSON estándar
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, ok bool, msg string) {
	WriteJSON(w, status, statusResponse{Success: ok, Message: msg})
}

// ReadJSON: decodifica JSON de forma tolerante (NO falla por campos
// desconocidos). Valida Content-Type y limita el body a 1MB.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.Contains(ct, "application/json") {
		writeStatus(w, http.StatusBadRequest, false, "Content-Type debe ser application/json")
		return false
	}
	// máx 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	// NOTA: NO usamos DisallowUnknownFields para no romper clientes que
	// mandan campos extra.
	if err := dec.Decode(v); err != nil && err != io.EOF {
		writeStatus(w, http.StatusBadRequest, false, "json inválido")
		return false
	}
	return true
}
