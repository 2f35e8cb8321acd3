// Package api hosts the HTTP server, middleware, and REST handlers. Notable
// routes:
//   - GET /healthz / readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - POST /v1/timeline/parse to turn a raw biography into a view.
//   - GET /v1/fighters/{id}/timeline for stored fighters.
//   - POST /v1/scroll/plan to preview the offsets a scroll run would request.
package api
