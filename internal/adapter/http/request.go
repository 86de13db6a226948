package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"local-ads/internal/core/port"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// decimal.Decimal is validated through its float value so numeric tags
	// such as gte apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

type campaignRequest struct {
	Name     string           `json:"name" validate:"required,max=255"`
	Keywords []string         `json:"keywordsNames" validate:"required,min=1,dive,required"`
	Price    *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Fund     *decimal.Decimal `json:"fund" validate:"required,gte=0"`
	Status   *bool            `json:"status"`
	City     string           `json:"city" validate:"required"`
	Radius   *float64         `json:"radius" validate:"required,gte=0"`
}

func (c campaignRequest) input() port.CampaignInput {
	return port.CampaignInput{
		Name:     strings.TrimSpace(c.Name),
		Keywords: c.Keywords,
		Price:    *c.Price,
		Fund:     *c.Fund,
		Status:   c.Status,
		City:     c.City,
		Radius:   *c.Radius,
	}
}

type statusRequest struct {
	Status *bool `json:"status" validate:"required"`
}

type registerRequest struct {
	Username string           `json:"username" validate:"required,max=64"`
	Email    string           `json:"email" validate:"required,email"`
	Password string           `json:"password" validate:"required,min=6"`
	Balance  *decimal.Decimal `json:"balance" validate:"omitempty,gte=0"`
}

func (req registerRequest) input() port.RegisterSellerInput {
	in := port.RegisterSellerInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Balance != nil {
		in.Balance = *req.Balance
	}
	return in
}

// decodeJSON reads the body into dst and validates it. Failures are
// reported as port.ErrValidation.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", port.ErrValidation, err)
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", port.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", port.ErrValidation, strings.Join(msgs, "; "))
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", port.ErrValidation, raw)
	}
	return id, nil
}

// keywordsParam accepts both repeated and comma separated values.
func keywordsParam(r *http.Request) []string {
	var out []string
	for _, v := range r.URL.Query()["keywords"] {
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}
