package model

import "time"

const DefaultTimeout = 500 * time.Millisecond
const DefaultRequestTimeout = 5 * time.Second
const DefaultPageSize = 20

const (
	OptimisticMaxAttempts   = 3
	PessimisticMaxAttempts  = 3
	DeadlockBackoffStep     = 50 * time.Millisecond
	DefaultReconcileTimeout = 30 * time.Second
)

const HeaderContentType = "Content-Type"

type ContextKey string

const KeyContextLogger ContextKey = "logger"
const KeyContextUserID ContextKey = "user_id"

const KeyLoggerError = "error"
