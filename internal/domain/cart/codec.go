package cart

import (
	"github.com/go-faster/jx"
)

// encodeItems renders the collection document written to the store.
func encodeItems(items []Item) []byte {
	var e jx.Encoder
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("productId")
		e.Str(item.ProductID)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("priceCents")
		e.Int64(item.PriceCents)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

// decodeItems parses a collection document. Unknown fields are skipped so
// older documents with extra annotations still load.
func decodeItems(doc []byte) ([]Item, error) {
	var items []Item
	d := jx.DecodeBytes(doc)
	err := d.Arr(func(d *jx.Decoder) error {
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
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
