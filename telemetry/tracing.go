package telemetry

import (
	"context"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
)

// InitTracing configures a global TracerProvider with an OTLP/HTTP
// exporter, a 20%-sampled parent-based sampler, and a
// deployment.environment resource attribute. Returns a shutdown func;
// callers should defer it.
func InitTracing(ctx context.Context, serviceName string, logger *zap.Logger) (func(context.Context) error, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint+"/v1/traces"))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			attribute.String("deployment.environment", os.Getenv("DEPLOY_ENV")),
		),
	)
	if err != nil {
		return nil, err
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(0.2))),
		trace.WithBatcher(exp,
			trace.WithMaxExportBatchSize(512),
			trace.WithBatchTimeout(5*time.Second),
		),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	if logger != nil {
		logger.Info("tracing initialized", zap.String("service", serviceName), zap.String("exporter", endpoint))
	}
	return tp.Shutdown, nil
}

// Tracer is the package-wide tracer used to open a span per pipeline
// stage. Analyze opens one span per stage (chunk, classify, graph, power,
// dispute, simulate, rewrite, frontier, playbook, corpus_compare, v12)
// so an operator can see where an analysis's latency budget is spent.
var Tracer = otel.Tracer("github.com/semaj90/legalrisk")

// StartSpan opens a span named name under ctx and returns the updated
// context plus an end func to defer.
func StartSpan(ctx context.Context, name string) (context.Context, func()) {
	ctx, span := Tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}
