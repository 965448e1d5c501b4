package common

import "errors"

// Engine failure kinds. Per-user failures inside a batch are collected and
// reported individually; none of these abort a batch.
var (
	// ErrNoEligibleTeam means a user's legal pick set for a week is empty.
	// Distinct from "no pick submitted yet" - the surrounding policy decides
	// the consequence (see Guild.MissedPickCostsLife).
	ErrNoEligibleTeam = errors.New("no eligible team available")

	// ErrDuplicatePick rejects a second pick for an already-picked user/week.
	ErrDuplicatePick = errors.New("pick already exists for this week")

	// ErrAlreadyProcessed marks reprocessing of a finalized pick or week.
	// Callers treat it as a no-op, not a user-facing failure.
	ErrAlreadyProcessed = errors.New("result already processed")

	// ErrDataIntegrity covers bad schedule data, e.g. a team appearing in
	// two games in the same week. Fatal for that record only.
	ErrDataIntegrity = errors.New("data integrity error")
)
