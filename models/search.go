package models

import (
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a stored record decoded into plain Go values.
type Item map[string]interface{}

// IndexGeneration describes one generation of a secondary index: its name,
// its hash and range attribute names, and the separator used inside the
// composite range key. Two generations exist per search domain because the
// table schema drifted; records are indexed under exactly one of them.
type IndexGeneration struct {
	IndexName string
	HashAttr  string
	RangeAttr string
	Separator string
}

// ClientIndexGenerations lists the client-search generations in probe order,
// legacy first. The order matters: the first generation that answers without
// an index error is authoritative for that identifier.
func ClientIndexGenerations() []IndexGeneration {
	return []IndexGeneration{
		{IndexName: "GSI_Cliente_Fecha", HashAttr: "ClienteID", RangeAttr: "FechaHoraISO", Separator: "T"},
		{IndexName: "GSI_IDCliente_Fecha", HashAttr: "IDCliente", RangeAttr: "FechaHoraOrden", Separator: "#"},
	}
}

// CardIndexGenerations lists the card-search generations in probe order.
func CardIndexGenerations() []IndexGeneration {
	return []IndexGeneration{
		{IndexName: "GSI_Tarjeta_Fecha", HashAttr: "TarjetaID", RangeAttr: "FechaHoraISO", Separator: "T"},
		{IndexName: "GSI_IDTarjeta_Fecha", HashAttr: "IDTarjeta", RangeAttr: "FechaHoraOrden", Separator: "#"},
	}
}

// QueryWindow is an inclusive start/end pair of range-key formatted strings,
// spanning either one calendar day or one calendar month.
type QueryWindow struct {
	Start string
	End   string
}

// Identifier is the canonical key produced by identifier normalization:
// either a whole number or, failing numeric parse, the trimmed string.
type Identifier struct {
	Number  int64
	Text    string
	Numeric bool
}

// AttributeValue renders the identifier as the DynamoDB key value matching
// its variant.
func (id Identifier) AttributeValue() types.AttributeValue {
	if id.Numeric {
		return &types.AttributeValueMemberN{Value: strconv.FormatInt(id.Number, 10)}
	}
	return &types.AttributeValueMemberS{Value: id.Text}
}

// String returns the identifier in the form it would appear in a log line.
func (id Identifier) String() string {
	if id.Numeric {
		return strconv.FormatInt(id.Number, 10)
	}
	return id.Text
}

// SearchParams carries the raw query parameters of a search request before
// normalization. Fecha selects a single day; Desde/Hasta select an explicit
// day range. All three empty means "latest month on record".
type SearchParams struct {
	ID    string
	Fecha string
	Desde string
	Hasta string
}
