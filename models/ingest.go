package models

// TransactionKeys is the minimum field set a transaction ingestion record
// must carry once coerced. The identifier may be synthesized from the other
// four when missing, which is why it is not required here.
type TransactionKeys struct {
	IDCliente  int64  `validate:"required"`
	IDComercio int64  `validate:"required"`
	Fecha      string `validate:"required,datetime=2006-01-02"`
	Hora       string `validate:"required"`
}
