package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PairBTCBRL = "BTC/BRL"
	PairBTCUSD = "BTC/USD"
	PairUSDBRL = "USD/BRL"
)

// Quote курс валютной пары, одна строка на пару
type Quote struct {
	ID         uuid.UUID
	PairSymbol string
	Value      decimal.Decimal
	UpdatedAt  time.Time
}

type QuoteResponse struct {
	PairSymbol string    `json:"par_moedas"`
	Value      float64   `json:"valor"`
	UpdatedAt  time.Time `json:"atualizado_em"`
}

func ToQuoteResponse(q *Quote) QuoteResponse {
	return QuoteResponse{
		PairSymbol: q.PairSymbol,
		Value:      q.Value.InexactFloat64(),
		UpdatedAt:  q.UpdatedAt,
	}
}

func ToQuoteResponses(list []*Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, ToQuoteResponse(q))
	}
	return out
}

// NormalizePair принимает BTC/BRL, btc-brl или BTCBRL и возвращает BTC/BRL.
func NormalizePair(raw string) string {
	p := strings.ToUpper(strings.TrimSpace(raw))
	p = strings.ReplaceAll(p, "-", "/")
	p = strings.ReplaceAll(p, "_", "/")
	if !strings.Contains(p, "/") && len(p) == 6 {
		p = p[:3] + "/" + p[3:]
	}
	return p
}

// ConversionFormula описывает, какой котировкой и каким действием переводится сумма.
type ConversionFormula struct {
	Pair   string
	Divide bool
}

type conversionKey struct {
	From string
	To   string
}

var conversionTable = map[conversionKey]ConversionFormula{
	{From: "BRL", To: "BTC"}: {Pair: PairBTCBRL, Divide: true},
	{From: "BTC", To: "BRL"}: {Pair: PairBTCBRL},
	{From: "USD", To: "BRL"}: {Pair: PairUSDBRL},
	{From: "BRL", To: "USD"}: {Pair: PairUSDBRL, Divide: true},
	{From: "BTC", To: "USD"}: {Pair: PairBTCUSD},
	{From: "USD", To: "BTC"}: {Pair: PairBTCUSD, Divide: true},
}

// LookupConversion ищет формулу для направления from -> to; коды ожидаются в верхнем регистре.
func LookupConversion(from, to string) (ConversionFormula, bool) {
	f, ok := conversionTable[conversionKey{From: from, To: to}]
	return f, ok
}

// ConversionResponse ответ GET /cotacoes/converter/{amount}/{source}/{dest}
type ConversionResponse struct {
	OriginalAmount  float64   `json:"valor_original"`
	SourceCurrency  string    `json:"moeda_origem"`
	DestCurrency    string    `json:"moeda_destino"`
	ConvertedAmount float64   `json:"valor_convertido"`
	Timestamp       time.Time `json:"timestamp"`
}

type ConversionResult struct {
	OriginalAmount  decimal.Decimal
	SourceCurrency  string
	DestCurrency    string
	ConvertedAmount decimal.Decimal
	Rate            decimal.Decimal
	QuotedAt        time.Time
}

func ToConversionResponse(r *ConversionResult, now time.Time) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:  r.OriginalAmount.InexactFloat64(),
		SourceCurrency:  r.SourceCurrency,
		DestCurrency:    r.DestCurrency,
		ConvertedAmount: r.ConvertedAmount.InexactFloat64(),
		Timestamp:       now,
	}
}
