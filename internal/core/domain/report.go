package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary aggregates completed orders over a date range.
type SalesSummary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	OrderCount   int             `json:"orderCount"`
	GrossRevenue decimal.Decimal `json:"grossRevenue"`
	Daily        []DailySales    `json:"daily"`
	TopItems     []ItemSales     `json:"topItems"`
}

type DailySales struct {
	Day        time.Time       `json:"day"`
	OrderCount int             `json:"orderCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type ItemSales struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}
