package consts

const (
	// TokenBlacklistKey 已注销 Token 签名
	TokenBlacklistKey = "auth:token:blacklist:"
)
