package generation

import (
	"errors"
	"fmt"

	"github.com/pokeforge/pokeforge/pkg/models"
)

// ErrPollTimeout is returned when a job does not reach a terminal status
// within the bounded number of polling attempts.
var ErrPollTimeout = errors.New("generation polling timed out")

// HTTPError is a non-2xx response from the generation API.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("generation api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("generation api error %d: %s", e.Status, e.Message)
}

// JobFailedError is returned when a job reaches a terminal failure status.
type JobFailedError struct {
	JobID  string
	Status models.JobStatus
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("generation job %s %s", e.JobID, e.Status)
}
