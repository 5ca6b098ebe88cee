package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequestsTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpRequestDurationSecondsVec = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	registrationsTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_registrations_total",
			Help: "Total number of person registration attempts.",
		},
		[]string{"service", "result"},
	)

	loginsTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_logins_total",
			Help: "Total number of login attempts.",
		},
		[]string{"service", "result"},
	)

	tokensIssuedTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_tokens_issued_total",
			Help: "Total number of token pairs issued by login or refresh.",
		},
		[]string{"service", "flow", "result"},
	)

	authenticationAttemptsTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_authentication_attempts_total",
			Help: "Bearer token checks performed by the request guard.",
		},
		[]string{"service", "result"},
	)

	messagesTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_messages_total",
			Help: "Message operations by kind and outcome.",
		},
		[]string{"service", "op", "result"},
	)

	throttledRequestsTotalVec = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nexus_throttled_requests_total",
			Help: "Requests rejected by the throttle.",
		},
		[]string{"service"},
	)
)

// DefaultService is the service label used until MustRegister is called.
const DefaultService = "nexus"

var (
	HTTPRequestsTotal           *prometheus.CounterVec
	HTTPRequestDurationSeconds  *prometheus.HistogramVec
	RegistrationsTotal          *prometheus.CounterVec
	LoginsTotal                 *prometheus.CounterVec
	TokensIssuedTotal           *prometheus.CounterVec
	AuthenticationAttemptsTotal *prometheus.CounterVec
	MessagesTotal               *prometheus.CounterVec
	ThrottledRequestsTotal      *prometheus.CounterVec
)

func init() { curry(DefaultService) }

func curry(serviceName string) {
	labels := prometheus.Labels{"service": serviceName}
	HTTPRequestsTotal = httpRequestsTotalVec.MustCurryWith(labels)
	HTTPRequestDurationSeconds = httpRequestDurationSecondsVec.MustCurryWith(labels).(*prometheus.HistogramVec)
	RegistrationsTotal = registrationsTotalVec.MustCurryWith(labels)
	LoginsTotal = loginsTotalVec.MustCurryWith(labels)
	TokensIssuedTotal = tokensIssuedTotalVec.MustCurryWith(labels)
	AuthenticationAttemptsTotal = authenticationAttemptsTotalVec.MustCurryWith(labels)
	MessagesTotal = messagesTotalVec.MustCurryWith(labels)
	ThrottledRequestsTotal = throttledRequestsTotalVec.MustCurryWith(labels)
}

// MustRegister binds the service label and registers every collector with
// the default registry. Call it once at start-up.
func MustRegister(serviceName string) {
	curry(serviceName)
	prometheus.MustRegister(
		httpRequestsTotalVec,
		httpRequestDurationSecondsVec,
		registrationsTotalVec,
		loginsTotalVec,
		tokensIssuedTotalVec,
		authenticationAttemptsTotalVec,
		messagesTotalVec,
		throttledRequestsTotalVec,
	)
}

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
