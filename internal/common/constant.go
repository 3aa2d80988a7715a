package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// access token on authenticated requests.
const AuthorizationHeaderName = "Authorization"

// TokenExpiredMessage is the error body the server returns for an expired
// access token. Clients match it to decide whether a refresh is worth trying.
const TokenExpiredMessage = "token expired"
