package health

import "context"

type ComponentStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type Status struct {
	Status     string            `json:"status"`
	Components []ComponentStatus `json:"components"`
}

type IHealthUsecase interface {
	Status(ctx context.Context) (Status, error)
}
