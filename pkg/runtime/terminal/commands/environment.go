package commands

import (
	"context"
	"time"

	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
)

const defaultBuildTimeout = 60 * time.Second

type DocumentBuilder interface {
	Build(ctx context.Context, req domain.ReportRequest) (*rdl.Report, error)
}

// Environment is what the build commands need from the loaded configuration.
type Environment struct {
	Builder      DocumentBuilder
	BuildTimeout time.Duration
}

// EnvironmentFactory creates an Environment from an optional config file path.
type EnvironmentFactory func(ctx context.Context, configPath string) (*Environment, error)

func (e *Environment) buildTimeout() time.Duration {
	if e.BuildTimeout <= 0 {
		return defaultBuildTimeout
	}
	return e.BuildTimeout
}
