// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with `swag init -g cmd/main.go` after changing handler
// annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "responses": {
                    "200": {"description": "id", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue a bearer token",
                "responses": {
                    "200": {"description": "token", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/simulations/run": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Run a simulation",
                "responses": {
                    "200": {"description": "Run", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/simulations/run/csv": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Run a simulation from a jobs CSV",
                "parameters": [{"type": "string", "name": "scheduler", "in": "query"}],
                "responses": {
                    "200": {"description": "Run", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/simulations/compare": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Compare schedulers",
                "responses": {
                    "200": {"description": "Comparison", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/simulations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "List recent runs",
                "responses": {
                    "200": {"description": "count, runs", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/simulations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["simulations"],
                "summary": "Get one run",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Run", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/series": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Series status",
                "responses": {
                    "200": {"description": "series", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object"}}
                }
            }
        },
        "/api/v1/series/{kind}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Upload a series CSV",
                "parameters": [{"type": "string", "name": "kind", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "status, kind, points", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Delete a series",
                "parameters": [{"type": "string", "name": "kind", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "status, kind", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "DataHub Energy Simulator API",
	Description:      "Energy-aware job scheduling simulator for a small data hub: baseline and smart schedulers over a 24h horizon with solar, thermal, and price inputs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
