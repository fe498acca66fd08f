package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/report-designer/pkg/adapters"
	"github.com/de-tools/report-designer/pkg/models/domain"
	"github.com/de-tools/report-designer/pkg/models/rdl"
	"github.com/de-tools/report-designer/pkg/models/store"
	"github.com/de-tools/report-designer/pkg/store/duckdb/document"
	"github.com/rs/zerolog"
)

const DefaultBuildTimeout = 60 * time.Second

var (
	ErrCancelled   = errors.New("report build cancelled")
	ErrNotBuilding = errors.New("no report build in flight")
)

type DocumentBuilder interface {
	Build(ctx context.Context, req domain.ReportRequest) (*rdl.Report, error)
}

// Controller runs report builds on behalf of viewer sessions. A session has at
// most one build in flight; a newer submit cancels the older one.
type Controller interface {
	Submit(ctx context.Context, session string, req domain.ReportRequest) (*store.Document, error)
	Cancel(ctx context.Context, session string) error
}

type buildDescriptor struct {
	cancelFunc context.CancelFunc
	seq        uint64
	done       chan struct{}
}

type Settings struct {
	BuildTimeout time.Duration
}

type DefaultController struct {
	builder   DocumentBuilder
	documents document.Store
	settings  Settings

	mu     sync.Mutex
	seq    uint64
	builds map[string]buildDescriptor
}

func NewController(builder DocumentBuilder, documents document.Store, settings Settings) *DefaultController {
	if settings.BuildTimeout <= 0 {
		settings.BuildTimeout = DefaultBuildTimeout
	}
	return &DefaultController{
		builder:   builder,
		documents: documents,
		settings:  settings,
		builds:    make(map[string]buildDescriptor),
	}
}

// Submit builds the document for req and stores it under a new id. The caller
// hands that id to the viewer, which resolves it through the document store.
func (ctrl *DefaultController) Submit(
	ctx context.Context,
	session string,
	req domain.ReportRequest,
) (*store.Document, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("session", session).
		Str("dataset", string(req.Dataset)).
		Logger()

	buildCtx, desc := ctrl.startBuild(ctx, session)
	report, err := ctrl.builder.Build(buildCtx, req)
	// classified before the build context is released by our own cancel
	superseded := err != nil && ctx.Err() == nil && errors.Is(buildCtx.Err(), context.Canceled)
	close(desc.done)
	ctrl.finishBuild(session, desc.seq)
	desc.cancelFunc()

	if err != nil {
		if superseded {
			logger.Info().Msg("report build superseded or cancelled")
			return nil, ErrCancelled
		}
		logger.Error().Err(err).Msg("report build failed")
		return nil, err
	}

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report document: %w", err)
	}
	request, err := json.Marshal(adapters.MapDomainRequestToApi(req))
	if err != nil {
		return nil, fmt.Errorf("encode report request: %w", err)
	}

	doc := &store.Document{
		Session: session,
		Dataset: string(req.Dataset),
		Request: request,
		Body:    body,
	}
	if err := ctrl.documents.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("store report document: %w", err)
	}

	logger.Info().Str("document", doc.ID).Msg("report document ready")
	return doc, nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, session string) error {
	ctrl.mu.Lock()
	desc, ok := ctrl.builds[session]
	if ok {
		delete(ctrl.builds, session)
	}
	ctrl.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: session %s", ErrNotBuilding, session)
	}
	desc.cancelFunc()
	<-desc.done
	return nil
}

func (ctrl *DefaultController) startBuild(ctx context.Context, session string) (context.Context, buildDescriptor) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if prev, ok := ctrl.builds[session]; ok {
		prev.cancelFunc()
	}

	ctrl.seq++
	buildCtx, cancel := context.WithTimeout(ctx, ctrl.settings.BuildTimeout)
	desc := buildDescriptor{
		cancelFunc: cancel,
		seq:        ctrl.seq,
		done:       make(chan struct{}),
	}
	ctrl.builds[session] = desc
	return buildCtx, desc
}

func (ctrl *DefaultController) finishBuild(session string, seq uint64) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if desc, ok := ctrl.builds[session]; ok && desc.seq == seq {
		delete(ctrl.builds, session)
	}
}
