package handler

import (
	"errors"
	"net/http"
	"reflect"

	"tablepos/internal/apierror"
	"tablepos/internal/lifecycle"
	"tablepos/internal/service"
	"tablepos/internal/settlement"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQuery is bindAndValidate for query strings.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// badRequest covers rejections the cashier fixes by re-entering input.
var badRequest = []error{
	service.ErrInvalid,
	lifecycle.ErrCartEmpty,
	lifecycle.ErrInvalidOrderType,
	lifecycle.ErrPaymentMethodRequired,
	lifecycle.ErrPaymentMethodDisabled,
	lifecycle.ErrInsufficientCash,
	lifecycle.ErrVoidReasonRequired,
}

// conflict covers transitions refused by the current order state.
var conflict = []error{
	lifecycle.ErrNotPending,
	lifecycle.ErrAlreadyVoided,
	lifecycle.ErrOrderClosed,
}

// respondError maps service and domain errors onto the API envelopes.
// Anything unrecognised is handed to the ErrorHandler middleware as a 500.
func respondError(c *gin.Context, err error) {
	var blocked *settlement.PendingPaymentsError
	if errors.As(err, &blocked) {
		c.JSON(http.StatusConflict, apierror.NewBlocked(blocked.Error(), blocked.Count))
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
	}
	for _, target := range conflict {
		if errors.Is(err, target) {
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
			return
		}
	}
	_ = c.Error(err)
}
