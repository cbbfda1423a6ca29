package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"festivales/internal/auth"
	"festivales/internal/metrics"
	"festivales/internal/model"
	"festivales/internal/repository"
)

const (
	historialBuffer    = 100
	historialBatchSize = 10
	historialInterval  = time.Second
	historialOrigen    = "api"
	historialWriteTime = 5 * time.Second
)

// Recorder appends audit entries for the authenticated caller.
type Recorder interface {
	Record(ctx context.Context, accion string, idDetalle *string, observacion string)
}

// HistorialService records audit entries in the background and serves reads.
type HistorialService interface {
	Recorder
	ListByUsuario(ctx context.Context, idUsuario string) ([]model.Historial, error)
	ListByDetalle(ctx context.Context, idDetalle string) ([]model.Historial, error)
	// Close stops accepting entries and waits until the buffer is flushed.
	Close()
}

type historialService struct {
	repo   repository.HistorialRepository
	logger *zap.Logger

	entries chan model.Historial
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewHistorialService creates the audit service and starts its writer.
func NewHistorialService(repo repository.HistorialRepository, logger *zap.Logger) HistorialService {
	s := &historialService{
		repo:    repo,
		logger:  logger,
		entries: make(chan model.Historial, historialBuffer),
		done:    make(chan struct{}),
	}
	go s.worker()
	return s
}

func (s *historialService) worker() {
	defer close(s.done)

	batch := make([]model.Historial, 0, historialBatchSize)
	ticker := time.NewTicker(historialInterval)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-s.entries:
			if !ok {
				s.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= historialBatchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *historialService) flush(batch []model.Historial) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historialWriteTime)
	defer cancel()
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		metrics.HistorialDropped.Add(float64(len(batch)))
		s.logger.Warn("historial flush failed", zap.Int("entries", len(batch)), zap.Error(err))
		return
	}
	s.logger.Debug("historial flushed", zap.Int("entries", len(batch)))
}

// Record queues an entry for the caller found in ctx. Anonymous calls are
// not recorded. When the buffer is full the entry is written inline.
func (s *historialService) Record(ctx context.Context, accion string, idDetalle *string, observacion string) {
	actor := auth.ActorID(ctx)
	if actor == "" {
		return
	}
	entry := model.Historial{
		Base:        model.Base{ID: model.NewID()},
		IDUsuario:   actor,
		IDDetalle:   idDetalle,
		FechaAccion: time.Now(),
		TipoAccion:  accion,
		Observacion: observacion,
		Origen:      historialOrigen,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.flush([]model.Historial{entry})
		return
	}
	select {
	case s.entries <- entry:
	default:
		s.flush([]model.Historial{entry})
	}
}

func (s *historialService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.entries)
	s.mu.Unlock()
	<-s.done
}

func (s *historialService) ListByUsuario(ctx context.Context, idUsuario string) ([]model.Historial, error) {
	if err := checkID(idUsuario); err != nil {
		return nil, err
	}
	return s.repo.ListByUsuario(ctx, idUsuario)
}

func (s *historialService) ListByDetalle(ctx context.Context, idDetalle string) ([]model.Historial, error) {
	if err := checkID(idDetalle); err != nil {
		return nil, err
	}
	return s.repo.ListByDetalle(ctx, idDetalle)
}
