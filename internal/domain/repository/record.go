package repository

import "time"

// SentinelNA es el valor canónico para "campo presente pero vacío" en los
// campos de texto opcionales de un registro LEH. Distinto de null/ausente.
const SentinelNA = "N/A"

// RecordFields son los campos mutables de un registro LEH, ya normalizados.
//
// Nota sobre la asimetría sentinel-vs-null: los textos opcionales vacíos se
// guardan como "N/A", pero Validity vacía o igual a "N/A" se guarda como null.
// Es una regla por campo heredada del sistema original; preservar exactamente.
type RecordFields struct {
	UserID             *string `json:"user_id"`
	Location           string  `json:"location"`
	Description        string  `json:"description"`
	PermissionType     string  `json:"permission_type"`
	Agency             string  `json:"agency"`
	Applicable         string  `json:"applicable"`
	Registered         string  `json:"registered"`
	RegistrationNumber string  `json:"registration_number"`
	Remarks            string  `json:"remarks"`
	Quantity           *int64  `json:"quantity"`
	Validity           *string `json:"validity"`
}

// Record es un registro LEH persistido (permiso/registro con ubicación,
// agencia y cantidad). UserID es una referencia débil: puede apuntar a un
// usuario inexistente, no hay integridad referencial ni cascada.
type Record struct {
	ID string `json:"id"`
	RecordFields
	// CreatedAt lo setea la capa de store al insertar y es inmutable.
	// Se usa para el orden descendente de los listados.
	CreatedAt time.Time `json:"created_at"`
}
