package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskWarmBuildingReport = "building.report.warm"

type WarmBuildingReportPayload struct {
	BBL       string `json:"bbl"`
	SourceBBL string `json:"sourceBbl,omitempty"`
}

func NewWarmBuildingReportTask(payload WarmBuildingReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWarmBuildingReport, data), nil
}

func ParseWarmBuildingReportPayload(task *asynq.Task) (WarmBuildingReportPayload, error) {
	var payload WarmBuildingReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return WarmBuildingReportPayload{}, err
	}
	return payload, nil
}
