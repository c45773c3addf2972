package service

// Outcome классифицирует результат мутирующей операции.
type Outcome string

const (
	OutcomeOK         Outcome = "ok"
	OutcomeNotFound   Outcome = "not_found"
	OutcomeInvalid    Outcome = "invalid"
	OutcomeStorageErr Outcome = "storage_error"
)

// Result is what every mutating call hands back to the presentation
// layer: a machine-checkable outcome plus a one-line human message.
// The caller decides how to render it; the service never panics and
// never terminates the process over a storage error.
type Result struct {
	Outcome Outcome
	Message string
	Err     error // underlying cause for OutcomeStorageErr, nil otherwise
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

func resultOK(msg string) Result {
	return Result{Outcome: OutcomeOK, Message: msg}
}

func resultNotFound(msg string) Result {
	return Result{Outcome: OutcomeNotFound, Message: msg}
}

func resultInvalid(msg string) Result {
	return Result{Outcome: OutcomeInvalid, Message: msg}
}

func resultStorageErr(msg string, err error) Result {
	return Result{Outcome: OutcomeStorageErr, Message: msg, Err: err}
}
