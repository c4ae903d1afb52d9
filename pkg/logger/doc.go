// Package logger builds slog loggers that enrich every record with
// request-scoped context values.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithAttrs(slog.String("service", "tablekit")),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	slog.SetDefault(log)
//
// With the tenant extractor registered, any log call made under a tenant
// binding carries a tenant_id attribute automatically.
package logger
