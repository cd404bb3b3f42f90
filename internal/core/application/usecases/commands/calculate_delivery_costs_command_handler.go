package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// CalculateDeliveryCostsResult summarizes one sweep.
type CalculateDeliveryCostsResult struct {
	// Priced counts parcels that received a cost in this run.
	Priced int
	// Failed counts parcels whose pricing or persistence failed; they stay unpriced.
	Failed int
}

// CalculateDeliveryCostsCommandHandler prices every parcel that has no delivery cost yet.
//
// The rate is obtained once before any parcel is touched; when it is unavailable the
// sweep ends without writes. Each parcel is then priced and stored in its own
// transaction, so a failure on one parcel never prevents the others. Stored parcels
// that cannot be read count as failed. Parcels that another run priced in the
// meantime are skipped.
//
// Example:
//
//	handler := NewCalculateDeliveryCostsCommandHandler(uowFactory, rateCache, calculator, logger)
//	result, err := handler.Handle(ctx, NewCalculateDeliveryCostsCommand())
//	if errors.Is(err, errs.ErrRateUnavailable) {
//	    // retried on the next tick
//	}
//	fmt.Printf("priced %d, failed %d\n", result.Priced, result.Failed)
type CalculateDeliveryCostsCommandHandler struct {
	uowFactory UoWFactory
	rates      RateSource
	calculator services.DeliveryCostCalculator
	logger     *slog.Logger
}

func NewCalculateDeliveryCostsCommandHandler(
	uowFactory UoWFactory,
	rates RateSource,
	calculator services.DeliveryCostCalculator,
	logger *slog.Logger,
) CalculateDeliveryCostsCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CalculateDeliveryCostsCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
		calculator: calculator,
		logger:     logger.With("component", "CalculateDeliveryCosts"),
	}
}

// Handle runs the sweep. The returned error joins every per-parcel failure; the result
// is meaningful even when the error is non-nil.
func (h CalculateDeliveryCostsCommandHandler) Handle(
	ctx context.Context,
	cmd CalculateDeliveryCostsCommand,
) (CalculateDeliveryCostsResult, error) {
	var result CalculateDeliveryCostsResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	rate, err := h.rates.GetRate(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Exchange rate unavailable, sweep skipped",
			"error", errs.Sanitize(err.Error()))
		return result, err
	}

	var failures []error
	parcels, err := h.uowFactory.Create().ParcelRepository().GetAllUnpriced(ctx)
	if err != nil {
		var unreadable *ports.UnreadableParcelsError
		if !errors.As(err, &unreadable) {
			return result, err
		}
		result.Failed += len(unreadable.IDs)
		h.logger.ErrorContext(ctx, "Skipped unreadable parcels",
			"parcel_ids", unreadable.IDs,
			"error", errs.Sanitize(err.Error()))
		failures = append(failures, err)
	}

	for _, p := range parcels {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		err = h.priceParcel(ctx, p, rate)
		switch {
		case err == nil:
			result.Priced++
		case errors.Is(err, ports.ErrParcelAlreadyPriced):
			h.logger.DebugContext(ctx, "Parcel already priced, skipped", "parcel_id", p.ID().String())
		default:
			result.Failed++
			h.logger.ErrorContext(ctx, "Failed to price parcel",
				"parcel_id", p.ID().String(),
				"error", errs.Sanitize(err.Error()))
			failures = append(failures, fmt.Errorf("parcel %s: %w", p.ID(), err))
		}
	}

	h.logger.InfoContext(ctx, "Delivery costs calculated",
		"rate", rate,
		"priced", result.Priced,
		"failed", result.Failed)

	return result, errors.Join(failures...)
}

func (h CalculateDeliveryCostsCommandHandler) priceParcel(ctx context.Context, p *parcel.Parcel, rate float64) error {
	cost, err := h.calculator.Calculate(p, rate)
	if err != nil {
		return err
	}
	if err = p.SetDeliveryCost(cost); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ParcelRepository().Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
