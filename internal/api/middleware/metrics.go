package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/avlasov/ABP-BookingPlatform/pkg/metrics"
)

// statusRecorder перехватывает статус-код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware фиксирует количество и длительность HTTP запросов.
// В качестве path используется шаблон роута mux, а не сырой URL -
// иначе кардинальность метрик растет с каждым ID
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tmpl, err := route.GetPathTemplate(); err == nil {
					path = tmpl
				}
			}

			m.ObserveHTTPRequest(r.Method, path, strconv.Itoa(recorder.status), time.Since(start).Seconds())
		})
	}
}
