package model

import "time"

// Artifact maps a generated object name to its public reference, e.g.
// "chair" -> "/objects/u1/chair.jpg".
type Artifact map[string]string

// Clone returns a copy so callers cannot mutate a recorded artifact.
func (a Artifact) Clone() Artifact {
	if a == nil {
		return nil
	}
	out := make(Artifact, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Outcome is the terminal result of one job invocation: either a success
// artifact or a failure message. Exactly one of the two is meaningful.
type Outcome struct {
	artifact Artifact
	message  string
	failed   bool
}

// Success builds a successful outcome. The artifact is copied, so later changes
// by the work function do not reach the recorded result.
func Success(artifact Artifact) Outcome {
	if artifact == nil {
		return Outcome{artifact: Artifact{}}
	}
	return Outcome{artifact: artifact.Clone()}
}

// Failure builds a failed outcome. An empty message is replaced so the error
// marker never carries a blank description.
func Failure(message string) Outcome {
	if message == "" {
		message = "job failed"
	}
	return Outcome{message: message, failed: true}
}

// FailureFromError converts an error into a failed outcome.
func FailureFromError(err error) Outcome {
	if err == nil {
		return Failure("")
	}
	return Failure(err.Error())
}

// IsSuccess reports whether the outcome is a success.
func (o Outcome) IsSuccess() bool { return !o.failed }

// Artifact returns a copy of the success artifact (nil for failures).
func (o Outcome) Artifact() Artifact {
	if o.failed {
		return nil
	}
	return o.artifact.Clone()
}

// Message returns the failure message (empty for successes).
func (o Outcome) Message() string { return o.message }

// Status maps the outcome to the status a reader will eventually observe.
func (o Outcome) Status() JobStatus {
	if o.failed {
		return JobStatusError
	}
	return JobStatusCompleted
}

// ErrorRecord is the body of an on-disk error marker.
type ErrorRecord struct {
	Error string `json:"error"`
	UID   string `json:"uid"`
}

// StatusRecord is what the result store reports for a UID.
type StatusRecord struct {
	UID    string
	Status JobStatus
	// Result is the success artifact. It is nil while processing, on error, or
	// when the success marker could not be parsed.
	Result Artifact
	// Error is the failure message when Status is JobStatusError.
	Error string
	// MarkerExists reports whether any terminal marker was found.
	MarkerExists bool
}

// OutcomeEntry is one row of the optional outcome journal.
type OutcomeEntry struct {
	ID         int64     `json:"id"          db:"id"`
	UID        string    `json:"uid"         db:"uid"`
	AttemptID  string    `json:"attempt_id"  db:"attempt_id"`
	Status     JobStatus `json:"status"      db:"status"`
	Artifact   Artifact  `json:"artifact"    db:"artifact"`
	Error      string    `json:"error"       db:"error"`
	DurationMS int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// PBRParameters are the placeholder material parameters written next to the
// generated objects.
type PBRParameters struct {
	Albedo         [3]float64 `json:"albedo"`
	Roughness      float64    `json:"roughness"`
	Metallic       float64    `json:"metallic"`
	NormalStrength float64    `json:"normal_strength"`
	Emissive       [3]float64 `json:"emissive"`
	AOStrength     float64    `json:"ao_strength"`
}

// DefaultPBRParameters returns the fixed placeholder material.
func DefaultPBRParameters() PBRParameters {
	return PBRParameters{
		Albedo:         [3]float64{0.8, 0.2, 0.1},
		Roughness:      0.3,
		Metallic:       0.1,
		NormalStrength: 1.0,
		Emissive:       [3]float64{0, 0, 0},
		AOStrength:     1.0,
	}
}
