package consts

const (
	TokenBlacklistKey = "auth:token:blacklist:"
)
