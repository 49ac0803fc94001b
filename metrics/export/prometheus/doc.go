// Package prometheus renders guestauth metrics in Prometheus text exposition
// format without depending on the Prometheus client library.
//
// [NewPrometheusExporter] reads [guestauth.Engine.MetricsSnapshot] on each
// scrape; [PrometheusExporter.Handler] serves the rendered text over HTTP.
//
// # What this package must NOT do
//
//   - Cache snapshots between scrapes.
//   - Mutate engine state.
package prometheus
