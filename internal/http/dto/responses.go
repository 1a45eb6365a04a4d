package dto

type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type InviteKOLsResponse struct {
	Invited int `json:"invited"`
	Skipped int `json:"skipped"`
	Items   any `json:"items"`
}

type FeePreviewResponse struct {
	Amount      float64 `json:"amount"`
	FeeRate     float64 `json:"fee_rate"`
	PlatformFee float64 `json:"platform_fee"`
	NetAmount   float64 `json:"net_amount"`
	Currency    string  `json:"currency"`
}
