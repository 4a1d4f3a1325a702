package dto

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrorResponse cuerpo de error HTTP para fallas no ligadas a un campo.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors convierte el resultado de Validate() (ozzo) en el mapa
// campo→mensaje del contrato. Con err == nil devuelve un mapa vacío listo
// para que el caso de uso agregue errores de referencia (category, types_product).
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}
	if err == nil {
		return fields
	}
	var verr validation.Errors
	if errors.As(err, &verr) {
		for field, ferr := range verr {
			fields[field] = ferr.Error()
		}
		return fields
	}
	fields["detail"] = err.Error()
	return fields
}
