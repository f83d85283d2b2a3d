package events

import (
	"fmt"
	"strings"
)

var messagesES = map[string]string{
	"validation.required":   "Este campo es obligatorio",
	"validation.max_length": "No puede superar {max} caracteres",
	"validation.min":        "Debe ser al menos {min}",
	"validation.email":      "Introduce un email válido",
	"validation.one_of":     "Selecciona una opción válida",
}

var formatsES = map[string]string{
	DateLayout: "Debe ser una fecha (AAAA-MM-DD)",
	TimeLayout: "Debe ser una hora (HH:MM)",
}

// TranslateES resolves validator translation keys into Spanish messages.
// Unknown keys come back unchanged so callers can spot missing entries.
func TranslateES(key string, values map[string]any) string {
	if key == "validation.format" {
		if layout, ok := values["layout"].(string); ok {
			if msg, ok := formatsES[layout]; ok {
				return msg
			}
		}
	}

	msg, ok := messagesES[key]
	if !ok {
		return key
	}
	for name, v := range values {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprint(v))
	}
	return msg
}
