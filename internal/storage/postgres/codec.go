package postgres

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/shoplane/orders-api/internal/domain/order"
)

// JSONB codecs for order line items and shipping addresses. Monetary
// values are encoded as strings to keep exact decimal representation in
// storage.

func encodeItems(items []order.OrderItem) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("product_id")
		e.Str(item.ProductID)
		e.FieldStart("product_name")
		e.Str(item.ProductName)
		e.FieldStart("product_sku")
		e.Str(item.ProductSKU)
		e.FieldStart("unit_price")
		e.Str(item.UnitPrice.String())
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("subtotal")
		e.Str(item.Subtotal.String())
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

func decodeItems(data []byte) ([]order.OrderItem, error) {
	var items []order.OrderItem
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		var item order.OrderItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "product_id":
				item.ProductID, err = d.Str()
			case "product_name":
				item.ProductName, err = d.Str()
			case "product_sku":
				item.ProductSKU, err = d.Str()
			case "unit_price":
				item.UnitPrice, err = decodeDecimal(d)
			case "quantity":
				item.Quantity, err = d.Int()
			case "subtotal":
				item.Subtotal, err = decodeDecimal(d)
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode items")
	}
	return items, nil
}

func encodeAddress(a order.Address) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("street")
	e.Str(a.Street)
	e.FieldStart("city")
	e.Str(a.City)
	e.FieldStart("state")
	e.Str(a.State)
	e.FieldStart("postal_code")
	e.Str(a.PostalCode)
	e.FieldStart("country")
	e.Str(a.Country)
	e.ObjEnd()
	return e.Bytes()
}

func decodeAddress(data []byte) (order.Address, error) {
	var a order.Address
	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "street":
			a.Street, err = d.Str()
		case "city":
			a.City, err = d.Str()
		case "state":
			a.State, err = d.Str()
		case "postal_code":
			a.PostalCode, err = d.Str()
		case "country":
			a.Country, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return order.Address{}, errors.Wrap(err, "decode address")
	}
	return a, nil
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	s, err := d.Str()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(s)
}
