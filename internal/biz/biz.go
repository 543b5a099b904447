package biz

import "github.com/google/wire"

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewVerifyUsecase)

// 校验任务在 Redis Stream 中的字段名
const (
	JobFieldVariant    = "variant"
	JobFieldIterations = "iterations"
)
