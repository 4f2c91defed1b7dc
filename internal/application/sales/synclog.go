package sales

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/repository"
)

// SyncLogWriter persiste un log por intento de procesamiento.
type SyncLogWriter struct {
	repo repository.SyncLogRepository
	now  func() time.Time
}

// NewSyncLogWriter construye el writer.
func NewSyncLogWriter(repo repository.SyncLogRepository) *SyncLogWriter {
	return &SyncLogWriter{repo: repo, now: time.Now}
}

// Write guarda el resumen del intento con el id ya asignado a los movimientos.
// ItemsCount es el número de líneas de la venta; IngredientsUpdated el de movimientos escritos.
func (w *SyncLogWriter) Write(ctx context.Context, id string, sale *entity.Sale, opts Options, res *SaleProcessingResult) (*entity.SyncLog, error) {
	l := &entity.SyncLog{
		ID:                 id,
		UserID:             opts.UserID,
		SyncType:           opts.SyncType,
		Status:             res.Status,
		SaleID:             sale.ID,
		OrderNumber:        sale.OrderNumber,
		ItemsCount:         len(sale.Lines),
		IngredientsUpdated: res.IngredientsUpdated(),
		Errors:             append([]entity.ProcessingError(nil), res.Errors...),
		ErrorMessage:       joinErrors(res.Errors),
		RequestPayload:     sale.Raw,
		CreatedAt:          w.now(),
	}
	if !sale.CreatedAt.IsZero() {
		d := sale.CreatedAt
		l.SaleDate = &d
	}
	if err := w.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func joinErrors(errs []entity.ProcessingError) string {
	if len(errs) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
