package wizard

import (
	"fmt"
	"strings"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
)

// Field identifies one editable draft value.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldClientEmail Field = "clientEmail"
	FieldPrice       Field = "price"
	FieldCurrency    Field = "currency"
	FieldPaymentType Field = "paymentType"
)

type setter func(d *Draft, value string) error

var setters = map[Field]setter{
	FieldTitle: func(d *Draft, v string) error {
		d.Title = v
		return nil
	},
	FieldDescription: func(d *Draft, v string) error {
		d.Description = v
		return nil
	},
	FieldClientEmail: func(d *Draft, v string) error {
		d.ClientEmail = strings.TrimSpace(v)
		return nil
	},
	FieldPrice: func(d *Draft, v string) error {
		d.Price = strings.TrimSpace(v)
		return nil
	},
	FieldCurrency: func(d *Draft, v string) error {
		c, ok := contracts.ParseCurrency(strings.ToUpper(strings.TrimSpace(v)))
		if !ok {
			return invalid(fmt.Sprintf("unsupported currency %q", v))
		}
		d.Currency = c
		return nil
	},
	FieldPaymentType: func(d *Draft, v string) error {
		p, ok := contracts.ParsePaymentType(strings.ToLower(strings.TrimSpace(v)))
		if !ok {
			return invalid(fmt.Sprintf("unsupported payment type %q", v))
		}
		d.PaymentType = p
		return nil
	},
}

// Fields lists the editable fields in form order.
var Fields = []Field{FieldTitle, FieldDescription, FieldClientEmail, FieldPrice, FieldCurrency, FieldPaymentType}

// ParseField resolves a form field name.
func ParseField(name string) (Field, error) {
	f := Field(strings.TrimSpace(name))
	if _, ok := setters[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

func init() {
	for _, f := range Fields {
		if _, ok := setters[f]; !ok {
			panic("wizard: no setter for field " + string(f))
		}
	}
	if len(setters) != len(Fields) {
		panic("wizard: setter table and field list disagree")
	}
}
