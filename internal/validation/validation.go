package validation

import (
	"encoding/json"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"
)

// CreateOrderRequest is the checkout payload. Prices are deliberately absent:
// the server recomputes them from the menu and active discounts.
type CreateOrderRequest struct {
	RestaurantID  int                      `json:"restaurant_id" validate:"required,gt=0"`
	CustomerName  string                   `json:"customer_name" validate:"required"`
	CustomerEmail string                   `json:"customer_email" validate:"required,email"`
	PickupSlot    string                   `json:"pickup_slot" validate:"required"`
	Note          string                   `json:"note"`
	Items         []CreateOrderRequestItem `json:"items" validate:"required,min=1,dive"`
}

type CreateOrderRequestItem struct {
	MenuItemID int `json:"menu_item_id" validate:"required,gt=0"`
	Quantity   int `json:"quantity" validate:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new accepted preparing ready picked_up"`
}

type CreateDiscountRequest struct {
	MenuItemID int     `json:"menu_item_id" validate:"required,gt=0"`
	Kind       string  `json:"kind" validate:"required,oneof=percentage fixed_amount"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Name       string  `json:"name"`
	Active     bool    `json:"active"`
	ValidFrom  string  `json:"valid_from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ValidUntil string  `json:"valid_until" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func New() *validatorv10.Validate {
	return validatorv10.New()
}

// BindAndValidate decodes the JSON body into out and validates it. On
// failure it writes a 400 response and returns the error so the handler can
// short-circuit.
func BindAndValidate(w http.ResponseWriter, r *http.Request, out interface{}, v *validatorv10.Validate) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, "invalid_request_body", map[string]string{"body": err.Error()})
		return err
	}

	if err := v.Struct(out); err != nil {
		writeError(w, "validation_failed", validationErrorsToMap(err))
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, code string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  code,
		"fields": fields,
	})
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
