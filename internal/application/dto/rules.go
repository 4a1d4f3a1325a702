package dto

import (
	"errors"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Reglas de campo compartidas. Cada regla es pura: recibe el valor y devuelve
// el error con el mensaje final del contrato. ozzo evalúa todas las reglas de
// todos los campos y las agrega en un validation.Errors (mapa campo→error),
// así el cliente recibe de una vez todo lo que está mal.

// minTrimmed exige una longitud mínima en runas tras recortar espacios.
func minTrimmed(min int, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if utf8.RuneCountInString(strings.TrimSpace(s)) < min {
			return errors.New(msg)
		}
		return nil
	}
}

// validPrice exige que el precio (texto) sea un número estrictamente positivo.
// "0", "-5" y "abc" se rechazan; "19.99" se acepta.
func validPrice(value interface{}) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("el precio debe ser un número")
	}
	if d.Cmp(decimal.Zero) <= 0 {
		return errors.New("el precio debe ser un número positivo")
	}
	return nil
}
