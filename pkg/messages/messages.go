// Package messages holds the localized response message catalog. The
// catalog is built once at init and is read-only afterwards, so it can
// be shared by reference across request handlers without locking.
package messages

import "net/http"

// Well-known message keys.
const (
	KeySuccess          = "SUCCESS_MESSAGE"
	KeyNotFound         = "NOT_FOUND"
	KeyUnauthorized     = "UNAUTHORIZED"
	KeyPermissionDenied = "PERMISSION_DENIED"
	KeyValidationError  = "VALIDATION_ERROR"
	KeyInternalError    = "INTERNAL_SERVER_ERROR"
)

// DefaultLanguage is used when a request carries no usable language tag.
const DefaultLanguage = "en"

// Message is one resolved catalog entry: a stable identifier echoed to
// clients, the human-readable text, and the HTTP status it implies.
type Message struct {
	ID     string
	Text   string
	Status int
}

var catalog = map[string]map[string]Message{
	"en": {
		KeySuccess:          {ID: "SUCCESS", Text: "Success", Status: http.StatusOK},
		KeyNotFound:         {ID: "NOT_FOUND", Text: "Not found", Status: http.StatusNotFound},
		KeyUnauthorized:     {ID: "UNAUTHORIZED", Text: "Unauthorized", Status: http.StatusUnauthorized},
		KeyPermissionDenied: {ID: "PERMISSION_DENIED", Text: "Permission denied", Status: http.StatusForbidden},
		KeyValidationError:  {ID: "VALIDATION_ERROR", Text: "Validation error", Status: http.StatusBadRequest},
		KeyInternalError:    {ID: "INTERNAL_SERVER_ERROR", Text: "Internal server error", Status: http.StatusInternalServerError},
	},
	"uz": {
		KeySuccess:          {ID: "SUCCESS", Text: "Muvaffaqiyatli", Status: http.StatusOK},
		KeyNotFound:         {ID: "NOT_FOUND", Text: "Topilmadi", Status: http.StatusNotFound},
		KeyUnauthorized:     {ID: "UNAUTHORIZED", Text: "Avtorizatsiyadan o'tilmagan", Status: http.StatusUnauthorized},
		KeyPermissionDenied: {ID: "PERMISSION_DENIED", Text: "Ruxsat berilmagan", Status: http.StatusForbidden},
		KeyValidationError:  {ID: "VALIDATION_ERROR", Text: "Validatsiya xatosi", Status: http.StatusBadRequest},
		KeyInternalError:    {ID: "INTERNAL_SERVER_ERROR", Text: "Ichki server xatosi", Status: http.StatusInternalServerError},
	},
}

// Lookup resolves a message key for a language. Unknown languages fall
// back to English; unknown keys fall back to the generic success entry
// rather than failing.
func Lookup(key, lang string) Message {
	entries, ok := catalog[lang]
	if !ok {
		entries = catalog[DefaultLanguage]
	}
	if m, ok := entries[key]; ok {
		return m
	}
	return entries[KeySuccess]
}
