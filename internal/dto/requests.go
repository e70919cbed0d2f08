package dto

type CreateTransactionRequest struct {
	Merchant       string  `json:"merchant" binding:"max=200"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Date           string  `json:"date" binding:"required"`
	Category       string  `json:"category" binding:"required,max=64"`
	CardID         string  `json:"card_id"`
	CardUsedHint   string  `json:"card_used_hint"`
	CurrencyCode   string  `json:"currency_code" binding:"omitempty,len=3,alpha"`
	CurrencySymbol string  `json:"currency_symbol" binding:"max=8"`
	Notes          string  `json:"notes" binding:"max=500"`
}

type BatchTransactionRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=1,max=500,dive"`
}

// RecommendRequest describes a prospective purchase. Cards optionally narrows the
// portfolio to the listed card ids.
type RecommendRequest struct {
	Merchant string   `json:"merchant"`
	Category string   `json:"category" binding:"required,max=64"`
	Amount   float64  `json:"amount"`
	Date     string   `json:"date"`
	Cards    []string `json:"cards"`
}

type SetCurrencyRequest struct {
	Code   string `json:"code" binding:"required,len=3,alpha"`
	Symbol string `json:"symbol" binding:"max=8"`
}
