package booking

import (
	"github.com/agarucorp/chrono-flow-prime-sub001/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// TxExecutor интерфейс для выполнения запросов внутри транзакции
type TxExecutor = dbmetrics.TxExecutor
