package predict

import "fmt"

// EncodeError reports a failure to turn the scan image into the
// payload the model service expects.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode payload: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// NetworkError reports that the model service could not be reached.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("prediction service unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError reports that the model service answered but the exchange
// failed, either with a non-200 status or an unusable body.
type APIError struct {
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("prediction service status %d", e.StatusCode)
	}
	return fmt.Sprintf("prediction service status %d: %s", e.StatusCode, e.Reason)
}
