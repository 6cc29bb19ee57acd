package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/instituteops/attendance-sync-go/internal/domain/payroll"
	"github.com/instituteops/attendance-sync-go/internal/handler/http/response"
	payrollService "github.com/instituteops/attendance-sync-go/internal/service/payroll"
)

type PayrollHandler struct {
	payrollSvc *payrollService.PayrollService
}

func NewPayrollHandler(payrollSvc *payrollService.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollSvc: payrollSvc}
}

// GenerateSlips handles POST /api/v1/payroll/slips?month=YYYY-MM
func (h *PayrollHandler) GenerateSlips(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	result, err := h.payrollSvc.GenerateMonth(r.Context(), month)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidMonth) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, err.Error())
		return
	}

	response.SuccessWithMessage(w, "slip generation completed", result)
}

// GetSlip handles GET /api/v1/payroll/slips/{employeeID}?month=YYYY-MM
func (h *PayrollHandler) GetSlip(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "month query parameter is required")
		return
	}

	slip, err := h.payrollSvc.GetSlip(r.Context(), employeeID, month)
	if err != nil {
		if errors.Is(err, payroll.ErrSlipNotFound) {
			response.NotFound(w, "salary slip not found")
			return
		}
		response.InternalServerError(w, err.Error())
		return
	}

	response.Success(w, slip)
}
