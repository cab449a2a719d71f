package transaction

import (
	"encoding/json"
	"errors"
	"time"

	"accept-broker/internal/domain/payment"
)

var ErrMissingTransactionID = errors.New("transaction id is required")

// Transaction is the write-once audit record of a gateway transaction.
type Transaction struct {
	transactionID            string
	referenceID              string
	responseCode             string
	authCode                 string
	amount                   payment.Money
	accountNumber            string
	accountType              string
	customerProfileID        string
	customerPaymentProfileID string
	status                   Status
	source                   Source
	rawResponse              json.RawMessage
	createdAt                time.Time
}

type Params struct {
	TransactionID            string
	ReferenceID              string
	ResponseCode             string
	AuthCode                 string
	Amount                   payment.Money
	AccountNumber            string
	AccountType              string
	CustomerProfileID        string
	CustomerPaymentProfileID string
	Status                   Status
	Source                   Source
	RawResponse              json.RawMessage
}

func New(p Params, now time.Time) (*Transaction, error) {
	if p.TransactionID == "" {
		return nil, ErrMissingTransactionID
	}
	status := p.Status
	if status == "" {
		status = StatusFromResponseCode(p.ResponseCode)
	}
	raw := p.RawResponse
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	return &Transaction{
		transactionID:            p.TransactionID,
		referenceID:              p.ReferenceID,
		responseCode:             p.ResponseCode,
		authCode:                 p.AuthCode,
		amount:                   p.Amount,
		accountNumber:            p.AccountNumber,
		accountType:              p.AccountType,
		customerProfileID:        p.CustomerProfileID,
		customerPaymentProfileID: p.CustomerPaymentProfileID,
		status:                   status,
		source:                   p.Source,
		rawResponse:              raw,
		createdAt:                now,
	}, nil
}

func (t *Transaction) TransactionID() string            { return t.transactionID }
func (t *Transaction) ReferenceID() string              { return t.referenceID }
func (t *Transaction) ResponseCode() string             { return t.responseCode }
func (t *Transaction) AuthCode() string                 { return t.authCode }
func (t *Transaction) Amount() payment.Money            { return t.amount }
func (t *Transaction) AccountNumber() string            { return t.accountNumber }
func (t *Transaction) AccountType() string              { return t.accountType }
func (t *Transaction) CustomerProfileID() string        { return t.customerProfileID }
func (t *Transaction) CustomerPaymentProfileID() string { return t.customerPaymentProfileID }
func (t *Transaction) Status() Status                   { return t.status }
func (t *Transaction) Source() Source                   { return t.source }
func (t *Transaction) RawResponse() json.RawMessage     { return t.rawResponse }
func (t *Transaction) CreatedAt() time.Time             { return t.createdAt }
