// requestid.go — middleware идентификатора запроса (X-Request-ID).
// Входящий идентификатор сохраняется, при отсутствии генерируется UUID.
// Идентификатор передаётся origin в заголовке запроса; ответ не меняется.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID — заголовок идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen — максимальная длина принимаемого идентификатора.
const maxRequestIDLen = 128

// requestIDKey — ключ контекста для идентификатора запроса.
type requestIDKey struct{}

// RequestID возвращает middleware, назначающий запросу идентификатор.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
				r.Header.Set(HeaderRequestID, id)
			}

			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext извлекает идентификатор запроса из контекста.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
