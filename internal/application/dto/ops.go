package dto

import "time"

type GetHealthCommand struct{}

type HealthOutput struct {
	Status string `json:"status"`
}

type GetOpenAPISpecQuery struct{}

type OpenAPISpecOutput struct {
	Content     []byte
	ContentType string
}

type InitializePersistenceCommand struct {
	ReadinessTimeout       time.Duration
	ReadinessRetryInterval time.Duration
}
