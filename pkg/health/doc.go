// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Checks run concurrently under a shared timeout. Responses are plain text,
// "OK" or "Service Unavailable: postgres", unless the client asks for JSON with
// an Accept: application/json header or ?format=json:
//
//	{"checks":{"postgres":{"status":"unhealthy","error":"health: check timeout","duration_ms":5000}},"status":"unhealthy"}
//
// Run executes the same checks without HTTP.
package health
