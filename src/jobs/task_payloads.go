package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeSessionReport = "session:report"

type SessionPayload struct {
	SessionID string `json:"session_id"`
}

func NewSessionReportTask(sessionID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SessionPayload{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSessionReport, payload), nil
}
