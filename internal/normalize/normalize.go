// Package normalize convierte el input crudo de un registro LEH (campos
// loosely-typed del body JSON) en los valores canónicos que se persisten.
//
// Las reglas son POR CAMPO, a propósito como tabla explícita y no como una
// única función genérica: los textos opcionales vacíos colapsan al sentinel
// "N/A", mientras que validity vacía o igual al sentinel se guarda como null.
// Unificar ambos comportamientos sería un bug.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
)

// quantityRE: sólo dígitos decimales, uno o más. Negativos, decimales y
// cualquier otra cosa quedan en null (el sistema original los descarta en
// silencio; comportamiento preservado, no validado con error).
var quantityRE = regexp.MustCompile(`^\d+$`)

// campos de texto opcionales que colapsan a "N/A".
var optionalTextFields = []string{
	"description",
	"permission_type",
	"agency",
	"applicable",
	"registered",
	"registration_number",
	"remarks",
}

// Record aplica la tabla de reglas sobre el input crudo y devuelve los campos
// normalizados. El único campo obligatorio es location: vacía después de trim
// ⇒ ErrInvalidInput. Todo lo demás tiene default.
func Record(raw map[string]any) (repository.RecordFields, error) {
	var out repository.RecordFields

	// location: obligatoria, exenta del sentinel.
	loc := strings.TrimSpace(stringify(raw["location"]))
	if loc == "" {
		return out, fmt.Errorf("%w: location is required", repository.ErrInvalidInput)
	}
	out.Location = loc

	// textos opcionales: ausente/null/vacío-tras-trim ⇒ "N/A", sino el trim.
	text := make(map[string]string, len(optionalTextFields))
	for _, field := range optionalTextFields {
		v := strings.TrimSpace(stringify(raw[field]))
		if v == "" {
			v = repository.SentinelNA
		}
		text[field] = v
	}
	out.Description = text["description"]
	out.PermissionType = text["permission_type"]
	out.Agency = text["agency"]
	out.Applicable = text["applicable"]
	out.Registered = text["registered"]
	out.RegistrationNumber = text["registration_number"]
	out.Remarks = text["remarks"]

	// quantity: acepta sólo ^\d+$ sobre la forma string del valor.
	if s := stringify(raw["quantity"]); quantityRE.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			out.Quantity = &n
		}
	}

	// validity: trim pass-through, pero vacía o "N/A" ⇒ null.
	if v := strings.TrimSpace(stringify(raw["validity"])); v != "" && v != repository.SentinelNA {
		out.Validity = &v
	}

	// user_id: pass-through sin validar contra usuarios (referencia débil).
	// Sólo si viene presente y truthy; "" / 0 / false / null ⇒ null.
	if truthy(raw["user_id"]) {
		id := stringify(raw["user_id"])
		out.UserID = &id
	}

	return out, nil
}

// stringify convierte un valor JSON arbitrario a su forma string.
// Los números JSON llegan como float64: 7 ⇒ "7" (pasa quantityRE),
// 12.5 ⇒ "12.5" (no pasa). Ausente/null ⇒ "".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// truthy replica la noción de "present and truthy" del sistema original:
// null, "", 0 y false cuentan como ausentes.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}
