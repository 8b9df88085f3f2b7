package backendclient

import "wallet_tracker/internal/domain/entity"

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the issued bearer token. Older backends nest it under "data".
type loginResponse struct {
	Token string `json:"token"`
	Data  *struct {
		Token string `json:"token"`
	} `json:"data,omitempty"`
}

func (r loginResponse) token() string {
	if r.Token != "" {
		return r.Token
	}
	if r.Data != nil {
		return r.Data.Token
	}
	return ""
}

// walletsEnvelope is the wrapped form of GET /wallets.
type walletsEnvelope struct {
	Wallets []entity.Wallet `json:"wallets"`
}

// holdingsEnvelope is the wrapped form of GET /wallets/{address}/tokens.
// The endpoint may also answer with a bare array of holdings.
type holdingsEnvelope struct {
	Tokens []entity.TokenHolding `json:"tokens"`
}

// errorBody is what the backend sends along with non-2xx statuses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
