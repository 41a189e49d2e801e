// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// Outcomes recorded for admin user deletions.
const (
	DeletionOutcomeSuccess      = "success"
	DeletionOutcomeUnauthorized = "unauthorized"
	DeletionOutcomeInvalidToken = "invalid_token"
	DeletionOutcomeForbidden    = "forbidden"
	DeletionOutcomeBadRequest   = "bad_request"
	DeletionOutcomeNotFound     = "not_found"
	DeletionOutcomeError        = "error"
)

// MetricsRecorder defines the business counters exported by the service.
type MetricsRecorder interface {
	// RecordUserDeletion counts one admin deletion request by outcome.
	RecordUserDeletion(outcome string)

	// RecordInstallmentsGenerated counts projected installments.
	RecordInstallmentsGenerated(count int)
}
