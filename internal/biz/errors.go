package biz

import "github.com/go-kratos/kratos/v2/errors"

// 错误定义
var (
	ErrVariantNotFound    = errors.NotFound("VARIANT_NOT_FOUND", "unknown WELL variant")
	ErrInvalidIterations  = errors.BadRequest("INVALID_ITERATIONS", "iterations must be a non-negative integer")
	ErrTooManyIterations  = errors.BadRequest("TOO_MANY_ITERATIONS", "run is too long for a synchronous request")
	ErrCheckpointNotFound = errors.NotFound("CHECKPOINT_NOT_FOUND", "no checkpoint stored")
	ErrQueueUnavailable   = errors.ServiceUnavailable("QUEUE_UNAVAILABLE", "verify job queue is not configured")
)
