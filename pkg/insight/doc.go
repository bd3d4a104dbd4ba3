// Package insight requests a written analysis of an aggregate report from an
// insight-generation service.
//
// [NewRequest] condenses a report into the figures the service needs: the top
// keywords, the record total, the average rating and the sentiment ratios.
// [Client.Generate] posts that request as JSON and decodes either an analysis
// or the service's error payload.
//
// The client makes exactly one attempt per call. Failed generations are
// surfaced to the caller as INSIGHT_ERROR, NETWORK_ERROR or TIMEOUT errors
// and are never retried.
package insight
