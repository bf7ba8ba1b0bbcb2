// Package openapi describes the shape of decoded records as OpenAPI 3 schemas
// so downstream consumers can validate or generate clients for the JSON the
// decoder emits.
package openapi
