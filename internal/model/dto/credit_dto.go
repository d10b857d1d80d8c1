package dto

type CreditBalance struct {
	Credits   int  `json:"credits"`
	IsPremium bool `json:"is_premium"`
}

type AddCreditsRequest struct {
	Amount      int    `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

type AddCreditsResponse struct {
	NewBalance int `json:"new_balance"`
}
