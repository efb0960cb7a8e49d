package dal

import (
	"github.com/estuardoo/api-transacciones-full/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// DecodeItem converts a stored item into plain Go values. Numeric
// attributes arrive as decimal strings; exactly-whole values become int64
// and everything else float64, so the JSON layer never emits "123" as
// "123.0" or a number as a quoted string.
func DecodeItem(raw map[string]types.AttributeValue) models.Item {
	if raw == nil {
		return nil
	}
	item := make(models.Item, len(raw))
	for name, av := range raw {
		item[name] = decodeValue(av)
	}
	return item
}

// DecodeItems converts a query result page.
func DecodeItems(raw []map[string]types.AttributeValue) []models.Item {
	items := make([]models.Item, 0, len(raw))
	for _, m := range raw {
		items = append(items, DecodeItem(m))
	}
	return items
}

func decodeValue(av types.AttributeValue) interface{} {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value
	case *types.AttributeValueMemberN:
		return decodeNumber(v.Value)
	case *types.AttributeValueMemberBOOL:
		return v.Value
	case *types.AttributeValueMemberNULL:
		return nil
	case *types.AttributeValueMemberSS:
		out := make([]interface{}, 0, len(v.Value))
		for _, s := range v.Value {
			out = append(out, s)
		}
		return out
	case *types.AttributeValueMemberNS:
		out := make([]interface{}, 0, len(v.Value))
		for _, n := range v.Value {
			out = append(out, decodeNumber(n))
		}
		return out
	case *types.AttributeValueMemberL:
		out := make([]interface{}, 0, len(v.Value))
		for _, e := range v.Value {
			out = append(out, decodeValue(e))
		}
		return out
	case *types.AttributeValueMemberM:
		out := make(map[string]interface{}, len(v.Value))
		for k, e := range v.Value {
			out[k] = decodeValue(e)
		}
		return out
	default:
		return nil
	}
}

func decodeNumber(s string) interface{} {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	if d.IsInteger() {
		return d.IntPart()
	}
	f, _ := d.Float64()
	return f
}
