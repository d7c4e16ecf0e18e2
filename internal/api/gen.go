//go:generate go tool oapi-codegen -config config.yaml ../../api/openapi.yaml

package api
