package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/estuardoo/api-transacciones-full/models"
	"github.com/estuardoo/api-transacciones-full/repository"
	"github.com/estuardoo/api-transacciones-full/utils/logger"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// idAttrPairs maps every accepted source key of an integer id attribute to
// its stored name. Both spellings of each pair are written so records stay
// queryable through both index generations.
var idAttrPairs = [][2]string{
	{"IDCliente", "IDCliente"}, {"ClienteID", "ClienteID"},
	{"IDComercio", "IDComercio"}, {"ComercioID", "ComercioID"},
	{"IDTarjeta", "IDTarjeta"}, {"TarjetaID", "TarjetaID"},
	{"IDMoneda", "IDMoneda"}, {"IDCanal", "IDCanal"}, {"IDEstado", "IDEstado"},
}

var idMirrors = [][2]string{
	{"IDCliente", "ClienteID"},
	{"IDComercio", "ComercioID"},
	{"IDTarjeta", "TarjetaID"},
}

var stringAttrs = []string{
	"CodigoAutorizacion", "Estado", "Canal", "CodigoMoneda",
	"NombreComercio", "Sector", "Producto",
	"NombreCompleto", "DNI", "telefono", "email", "Tarjeta",
}

var decimalAttrs = []string{"MontoBruto", "TasaCambio", "Monto"}

var intAttrs = []string{"IndicadorAprobada", "LatenciaAutorizacionMs", "Fraude"}

// aggregateAttrs are the decimal columns of a merchant monthly-aggregate row.
var aggregateAttrs = []string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
	"Promedio", "TotalMonto", "TotalFraude", "Composicion",
}

// IngestService normalizes loosely-typed import rows and batch-upserts them
// by primary key. It never reads; the search path never writes.
type IngestService struct {
	transactions repository.TransactionRepositoryInterface
	merchants    repository.MerchantRepositoryInterface
	validate     *validator.Validate
	logger       logger.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(transactions repository.TransactionRepositoryInterface, merchants repository.MerchantRepositoryInterface, log logger.Logger) *IngestService {
	return &IngestService{
		transactions: transactions,
		merchants:    merchants,
		validate:     validator.New(),
		logger:       log,
	}
}

// ParsePayload accepts either a bare JSON array of records or an object
// carrying them under "data" (itself an object or an array).
func ParsePayload(body []byte) ([]map[string]interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, models.Invalid(fmt.Sprintf("JSON inválido: %v", err))
	}

	switch p := v.(type) {
	case []interface{}:
		return onlyObjects(p), nil
	case map[string]interface{}:
		switch data := p["data"].(type) {
		case []interface{}:
			return onlyObjects(data), nil
		case map[string]interface{}:
			return []map[string]interface{}{data}, nil
		default:
			return nil, models.Invalid("JSON debe ser lista o {'data': [...]}")
		}
	default:
		return nil, models.Invalid("JSON debe ser lista o {'data': [...]}")
	}
}

func onlyObjects(in []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(in))
	for _, e := range in {
		if m, ok := e.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// ImportTransactions coerces and upserts a batch of transaction rows.
// Writes are keyed on IDTransaccion, so re-running the same batch leaves
// the table unchanged.
func (s *IngestService) ImportTransactions(ctx context.Context, rows []map[string]interface{}) (*models.ImportResult, error) {
	items := make([]map[string]types.AttributeValue, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		item, err := s.buildTransaction(row)
		if err != nil {
			s.logger.Warnf("Skipping transaction row: %v", err)
			skipped++
			continue
		}
		items = append(items, item)
	}

	if err := s.transactions.PutTransactions(ctx, items); err != nil {
		return nil, err
	}

	s.logger.Infof("Imported %d transactions (%d skipped)", len(items), skipped)
	return &models.ImportResult{Inserted: len(items), Skipped: skipped}, nil
}

func (s *IngestService) buildTransaction(row map[string]interface{}) (map[string]types.AttributeValue, error) {
	clean := map[string]types.AttributeValue{}

	for _, pair := range idAttrPairs {
		if n, ok := toInt(row[pair[0]]); ok {
			clean[pair[1]] = avN(decimal.NewFromInt(n))
		}
	}
	for _, mirror := range idMirrors {
		if v, ok := clean[mirror[0]]; ok {
			if _, dup := clean[mirror[1]]; !dup {
				clean[mirror[1]] = v
			}
		}
	}

	fecha := toString(row["Fecha"])
	hora := toString(row["Hora"])

	keys := models.TransactionKeys{
		IDCliente:  intAttr(clean, "IDCliente"),
		IDComercio: intAttr(clean, "IDComercio"),
		Fecha:      fecha,
		Hora:       hora,
	}
	if err := s.validate.Struct(keys); err != nil {
		return nil, fmt.Errorf("missing required fields: %w", err)
	}

	tid := firstString(row, "IDTransaccion", "TransaccionID", "id", "Id")
	if tid == "" {
		tid = fmt.Sprintf("%d-%d-%s-%s", keys.IDCliente, keys.IDComercio, fecha, hora)
	}
	clean["IDTransaccion"] = avS(tid)

	orden, iso := buildFechaFields(fecha, hora)
	clean["FechaHoraOrden"] = avS(orden)
	clean["FechaHoraISO"] = avS(iso)
	clean["Fecha"] = avS(fecha)
	clean["Hora"] = avS(hora)

	for _, k := range stringAttrs {
		if v := toString(row[k]); v != "" {
			clean[k] = avS(v)
		}
	}
	for _, k := range decimalAttrs {
		if d, ok := toDecimal(row[k]); ok {
			clean[k] = avN(d)
		}
	}
	for _, k := range intAttrs {
		if n, ok := toInt(row[k]); ok {
			clean[k] = avN(decimal.NewFromInt(n))
		}
	}

	if fc := toString(row["FechaCarga"]); fc != "" {
		clean["FechaCarga"] = avS(normalizeFechaCarga(fc))
	}

	return clean, nil
}

// ImportMerchants classifies each row as a monthly-aggregate row (Tipo, ID,
// Agregado and Grupo all present) or a merchant detail row (IDComercio or
// ComercioID present) and upserts each into its table.
func (s *IngestService) ImportMerchants(ctx context.Context, rows []map[string]interface{}) (*models.ImportResult, error) {
	var aggregates, details []map[string]types.AttributeValue

	for _, row := range rows {
		if isAggregateRow(row) {
			aggregates = append(aggregates, buildAggregate(row))
			continue
		}
		if item, ok := buildMerchantDetail(row); ok {
			details = append(details, item)
		}
	}

	if len(aggregates) > 0 {
		if err := s.merchants.PutAggregates(ctx, aggregates); err != nil {
			return nil, err
		}
	}
	if len(details) > 0 {
		if err := s.merchants.PutDetails(ctx, details); err != nil {
			return nil, err
		}
	}

	s.logger.Infof("Imported %d merchant aggregates, %d merchant details", len(aggregates), len(details))
	return &models.ImportResult{InsertedAgregados: len(aggregates), InsertedDetalle: len(details)}, nil
}

func isAggregateRow(row map[string]interface{}) bool {
	for _, k := range []string{"Tipo", "ID", "Agregado", "Grupo"} {
		if _, ok := row[k]; !ok {
			return false
		}
	}
	return true
}

func buildAggregate(row map[string]interface{}) map[string]types.AttributeValue {
	tipo, _ := toInt(row["Tipo"])
	id, _ := toInt(row["ID"])

	item := map[string]types.AttributeValue{
		"Tipo":     avN(decimal.NewFromInt(tipo)),
		"ID":       avN(decimal.NewFromInt(id)),
		"Agregado": avS(toString(row["Agregado"])),
		"Grupo":    avS(toString(row["Grupo"])),
	}
	for _, k := range aggregateAttrs {
		if d, ok := toDecimal(row[k]); ok {
			item[k] = avN(d)
		}
	}
	return item
}

func buildMerchantDetail(row map[string]interface{}) (map[string]types.AttributeValue, bool) {
	idv, ok := toInt(row["IDComercio"])
	if !ok {
		if idv, ok = toInt(row["ComercioID"]); !ok {
			return nil, false
		}
	}

	item := map[string]types.AttributeValue{}
	for k, v := range row {
		if k == "IDComercio" || k == "ComercioID" {
			continue
		}
		if av := encodeValue(v); av != nil {
			item[k] = av
		}
	}
	item["IDComercio"] = avN(decimal.NewFromInt(idv))
	item["ComercioID"] = avN(decimal.NewFromInt(idv))
	return item, true
}

// buildFechaFields synthesizes both date representations from separate date
// and time fields: the composite ordering key and the ISO timestamp. When
// the pair does not parse, both fall back to plain concatenation so the
// record still sorts by its raw strings.
func buildFechaFields(fecha, hora string) (orden, iso string) {
	if hora == "" {
		hora = "00:00:00"
	}
	orden = fecha + "#" + hora

	t, err := time.ParseInLocation("2006-01-02 15:04:05", fecha+" "+hora, time.UTC)
	if err != nil {
		return orden, fecha + "T" + hora
	}
	return orden, t.Format("2006-01-02T15:04:05-0700")
}

func normalizeFechaCarga(fc string) string {
	if strings.Contains(fc, " ") && !strings.Contains(fc, "T") {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", fc, time.UTC); err == nil {
			return t.Format("2006-01-02T15:04:05-0700")
		}
	}
	return fc
}

func firstString(row map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v := toString(row[k]); v != "" {
			return v
		}
	}
	return ""
}

// toInt coerces a JSON value into a whole number. Empty strings and the
// textual NULL markers some exports emit count as absent.
func toInt(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return int64(x), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" || s == "NULL" || s == "null" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// toDecimal coerces a JSON value into an exact decimal, tolerating the
// thousands separators and stray spaces seen in spreadsheet exports.
func toDecimal(v interface{}) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false
	case float64:
		return decimal.NewFromFloat(x), true
	case string:
		s := strings.NewReplacer(" ", "", ",", "").Replace(x)
		if s == "" || s == "NULL" || s == "null" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		d := decimal.NewFromFloat(x)
		return d.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func avS(s string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: s}
}

func avN(d decimal.Decimal) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: d.String()}
}

func intAttr(item map[string]types.AttributeValue, key string) int64 {
	if av, ok := item[key].(*types.AttributeValueMemberN); ok {
		if n, err := strconv.ParseInt(av.Value, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// encodeValue maps an arbitrary JSON value onto its DynamoDB counterpart
// for passthrough fields of merchant detail rows.
func encodeValue(v interface{}) types.AttributeValue {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil
	}
	return av
}
