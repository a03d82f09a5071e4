package usage

import "time"

// Record is one logged API invocation: which endpoint was hit and the
// request parameters as a JSON payload.
type Record struct {
	ID          int64
	Endpoint    string
	Payload     string
	Outcome     string
	RequestedAt time.Time
}
