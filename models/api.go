package models

// APIResponse is the envelope returned by every endpoint. Successful calls
// carry the payload under "data"; failures carry a human-readable "msg".
type APIResponse struct {
	OK   bool        `json:"ok"`
	Data interface{} `json:"data,omitempty"`
	Msg  string      `json:"msg,omitempty"`
}

// OKResponse wraps a payload in a success envelope.
func OKResponse(data interface{}) APIResponse {
	return APIResponse{OK: true, Data: data}
}

// ErrorResponse wraps a message in a failure envelope.
func ErrorResponse(msg string) APIResponse {
	return APIResponse{OK: false, Msg: msg}
}

// ImportResult reports how many rows an ingestion call wrote per table.
type ImportResult struct {
	Inserted          int    `json:"inserted,omitempty"`
	Skipped           int    `json:"skipped,omitempty"`
	InsertedDetalle   int    `json:"inserted_detalle,omitempty"`
	InsertedAgregados int    `json:"inserted_agregados,omitempty"`
	Table             string `json:"table,omitempty"`
	TablaDetalle      string `json:"tabla_detalle,omitempty"`
	TablaAgregados    string `json:"tabla_agregados,omitempty"`
}
