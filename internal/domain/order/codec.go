package order

import (
	"github.com/go-faster/jx"
)

func encodeOrders(orders []Order) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, o := range orders {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(o.ID)
		e.FieldStart("priceCents")
		e.Int64(o.PriceCents)
		e.FieldStart("date")
		e.Str(o.Date)
		e.FieldStart("items")
		e.ArrStart()
		for _, item := range o.Items {
			e.ObjStart()
			e.FieldStart("productId")
			e.Str(item.ProductID)
			e.FieldStart("quantity")
			e.Int(item.Quantity)
			e.FieldStart("priceCents")
			e.Int64(item.PriceCents)
			if item.DeliveryDate != "" {
				e.FieldStart("deliveryDate")
				e.Str(item.DeliveryDate)
			}
			e.ObjEnd()
		}
		e.ArrEnd()
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

func decodeOrders(doc []byte) ([]Order, error) {
	var orders []Order
	d := jx.DecodeBytes(doc)
	err := d.Arr(func(d *jx.Decoder) error {
		var o Order
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "id":
				o.ID, err = d.Str()
			case "priceCents":
				o.PriceCents, err = d.Int64()
			case "date":
				o.Date, err = d.Str()
			case "items":
				err = d.Arr(func(d *jx.Decoder) error {
					var item Item
					if err := d.Obj(func(d *jx.Decoder, key string) error {
						var err error
						switch key {
						case "productId":
							item.ProductID, err = d.Str()
						case "quantity":
							item.Quantity, err = d.Int()
						case "priceCents":
							item.PriceCents, err = d.Int64()
						case "deliveryDate":
							item.DeliveryDate, err = d.Str()
						default:
							err = d.Skip()
						}
						return err
					}); err != nil {
						return err
					}
					o.Items = append(o.Items, item)
					return nil
				})
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
