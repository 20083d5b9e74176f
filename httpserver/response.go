package httpserver

import (
	"strings"

	"github.com/labstack/echo/v4"

	"cinehub/pkg/messages"
)

const languageContextKey = "request_language"

// APIResponse is the envelope every endpoint answers with. ID and
// Message come from the localized catalog; Data carries the payload of
// successful calls and Errors the field map of validation failures.
type APIResponse struct {
	ID      string      `json:"id"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respond writes data inside the envelope for key, with the status the
// catalog assigns to that key.
func respond(c echo.Context, key string, data interface{}) error {
	m := messages.Lookup(key, requestLanguage(c))
	return c.JSON(m.Status, APIResponse{
		ID:      m.ID,
		Message: m.Text,
		Data:    data,
	})
}

// respondStatus is respond with an explicit status overriding the
// catalog one, for cases like 201 on create.
func respondStatus(c echo.Context, key string, status int, data interface{}) error {
	m := messages.Lookup(key, requestLanguage(c))
	return c.JSON(status, APIResponse{
		ID:      m.ID,
		Message: m.Text,
		Data:    data,
	})
}

// respondErrors writes an error envelope; fields may be nil when there
// is no per-field detail to attach. status overrides the catalog status
// when non-zero, so middleware statuses like 429 survive the envelope.
func respondErrors(c echo.Context, key string, status int, fields map[string][]string) error {
	m := messages.Lookup(key, requestLanguage(c))
	if status == 0 {
		status = m.Status
	}
	resp := APIResponse{
		ID:      m.ID,
		Message: m.Text,
	}
	if len(fields) > 0 {
		resp.Errors = fields
	}
	return c.JSON(status, resp)
}

// requestLanguage reads the language resolved by ResolveLanguage. A
// missing value means the middleware did not run (tests hitting a bare
// handler) and falls back to the default.
func requestLanguage(c echo.Context) string {
	if lang, ok := c.Get(languageContextKey).(string); ok && lang != "" {
		return lang
	}
	return messages.DefaultLanguage
}

// ResolveLanguage resolves the response language once per request: the
// lang query parameter wins, then the primary subtag of Accept-Language,
// then the default.
func ResolveLanguage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		lang := c.QueryParam("lang")
		if lang == "" {
			lang = primarySubtag(c.Request().Header.Get("Accept-Language"))
		}
		if lang == "" {
			lang = messages.DefaultLanguage
		}
		c.Set(languageContextKey, lang)
		return next(c)
	}
}

// primarySubtag extracts "uz" from headers like "uz-UZ,ru;q=0.9".
func primarySubtag(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return ""
	}
	first := header
	if i := strings.IndexAny(first, ",;"); i >= 0 {
		first = first[:i]
	}
	if i := strings.Index(first, "-"); i >= 0 {
		first = first[:i]
	}
	return strings.ToLower(strings.TrimSpace(first))
}
