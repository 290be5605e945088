package models

const (
	// HistoryTimeLayout renders e.g. "March 3, 2025 at 4:43pm".
	HistoryTimeLayout = "January 2, 2006 at 3:04pm"

	HistoryFieldSeparator = "|"
	HistoryItemSeparator  = ","
	historyFieldCount     = 4

	DefaultHistoryFile = "order_history.txt"

	StrategyFamiliar = "familiar"
	StrategyNudge    = "nudge"
	StrategyExplore  = "explore"

	OutputFormatConsole  = "console"
	OutputFormatJSON     = "json"
	OutputFormatCSV      = "csv"
	OutputFormatParquet  = "parquet"
	OutputFormatKafka    = "kafka"
	OutputFormatPostgres = "postgres"

	DefaultOrdersTopic = "orders"
)
