// Type aliases for the OpenTelemetry attribute types used in tracing and
// metrics. The aliases keep glint's API self-contained in documentation
// while using the standard OTel types underneath.
package glint

import "go.opentelemetry.io/otel/attribute"

// Attr is a key-value pair used for span attributes and metric dimensions.
// Create attributes with the standard OTel constructors:
//
//	span.SetAttributes(
//	    attribute.String("pool.address", addr),
//	    attribute.Int64("retry.count", 3),
//	)
//
// glint intentionally does not wrap the attribute constructors; the
// standard OpenTelemetry API is the one worth knowing.
type Attr = attribute.KeyValue

// AttrKey is a type alias for attribute keys.
// Use attribute.Key("mykey").String("value") for advanced patterns.
type AttrKey = attribute.Key
