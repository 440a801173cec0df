package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/venue-admin/internal/admin/bottles"
	"finitefield.org/venue-admin/internal/admin/dashboard"
	"finitefield.org/venue-admin/internal/admin/orders"
	"finitefield.org/venue-admin/internal/admin/payroll"
	"finitefield.org/venue-admin/internal/admin/shifts"
	"finitefield.org/venue-admin/internal/admin/staff"
	"finitefield.org/venue-admin/internal/admin/tables"
	"finitefield.org/venue-admin/internal/platform/httpx"
	"finitefield.org/venue-admin/internal/platform/requestctx"
	"finitefield.org/venue-admin/internal/platform/validation"
)

type errorMapping struct {
	target error
	code   string
	status int
}

var errorMappings = []errorMapping{
	{tables.ErrNotFound, "table_not_found", http.StatusNotFound},
	{tables.ErrInvalidTransition, "invalid_transition", http.StatusConflict},
	{tables.ErrTableInUse, "table_in_use", http.StatusConflict},
	{tables.ErrTableNotOccupied, "table_not_occupied", http.StatusConflict},
	{tables.ErrDuplicateNumber, "duplicate_table_number", http.StatusConflict},
	{tables.ErrInvalidInput, "invalid_input", http.StatusBadRequest},

	{orders.ErrMenuItemNotFound, "menu_item_not_found", http.StatusNotFound},
	{orders.ErrOutOfStock, "out_of_stock", http.StatusConflict},
	{orders.ErrInvalidInput, "invalid_input", http.StatusBadRequest},

	{staff.ErrNotFound, "staff_not_found", http.StatusNotFound},
	{staff.ErrInvalidTransition, "invalid_transition", http.StatusConflict},
	{staff.ErrInvalidInput, "invalid_input", http.StatusBadRequest},

	{payroll.ErrNotFound, "payroll_record_not_found", http.StatusNotFound},
	{payroll.ErrInvalidInput, "invalid_input", http.StatusBadRequest},

	{bottles.ErrNotFound, "bottle_not_found", http.StatusNotFound},
	{bottles.ErrZeroAdjustment, "zero_adjustment", http.StatusBadRequest},
	{bottles.ErrInvalidInput, "invalid_input", http.StatusBadRequest},

	{shifts.ErrShiftNotFound, "shift_not_found", http.StatusNotFound},
	{shifts.ErrRequestNotFound, "shift_request_not_found", http.StatusNotFound},
	{shifts.ErrInvalidTransition, "invalid_transition", http.StatusConflict},
	{shifts.ErrInvalidInput, "invalid_input", http.StatusBadRequest},

	{dashboard.ErrNotConfigured, "service_unavailable", http.StatusServiceUnavailable},
}

// writeServiceError maps domain errors onto the JSON error envelope.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		apiErr := httpx.NewError(m.code, err.Error(), m.status)
		var verr *validation.Error
		if errors.As(err, &verr) && len(verr.Fields) > 0 {
			apiErr = apiErr.WithDetails(map[string]any{"fields": verr.Fields})
		}
		httpx.WriteError(ctx, w, apiErr)
		return
	}

	requestctx.Logger(ctx).Error("unhandled service error", zap.Error(err))
	httpx.WriteError(ctx, w, httpx.NewError("internal_error", "unexpected error", http.StatusInternalServerError))
}
