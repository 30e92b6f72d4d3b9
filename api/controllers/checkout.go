package controllers

import (
	"net/http"

	"github.com/shahzada-shah/flow-studios/api/responses"
	"github.com/shahzada-shah/flow-studios/api/validators"
	"github.com/shahzada-shah/flow-studios/internal/checkout"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
)

// checkoutQuoteRequest only shapes the body; field rules live in
// checkout.Details so the quote endpoint and the service agree.
type checkoutQuoteRequest struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Country        string `json:"country"`
	City           string `json:"city"`
	ZipCode        string `json:"zip_code"`
	StreetAddress  string `json:"street_address"`
	Apartment      string `json:"apartment"`
	Phone          string `json:"phone"`
	ShippingMethod string `json:"shipping_method"`
}

func (r checkoutQuoteRequest) toDetails() checkout.Details {
	return checkout.Details{
		Email:          r.Email,
		FullName:       r.FullName,
		Country:        r.Country,
		City:           r.City,
		ZipCode:        r.ZipCode,
		StreetAddress:  r.StreetAddress,
		Apartment:      r.Apartment,
		Phone:          r.Phone,
		ShippingMethod: enums.ShippingMethod(r.ShippingMethod),
	}
}

// CheckoutQuote prices the session cart against the submitted delivery details.
func CheckoutQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		sessionID, err := sessionIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), sessionID, payload.toDetails())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
