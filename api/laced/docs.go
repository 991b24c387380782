// Package laced holds the generated OpenAPI document for the storefront API.
package laced

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
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
		"/v1/auth/sign-up": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Create an account",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/lacedsdk.SignUpRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Signed up; auth_session cookie set",
						"schema": {
							"$ref": "#/definitions/lacedsdk.AuthResponse"
						}
					},
					"400": {
						"description": "Validation error",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					},
					"409": {
						"description": "Email already registered",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					},
					"503": {
						"description": "Store unavailable",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/auth/sign-in": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Sign in",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/lacedsdk.SignInRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "Signed in; auth_session cookie set",
						"schema": {
							"$ref": "#/definitions/lacedsdk.AuthResponse"
						}
					},
					"400": {
						"description": "Validation error",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					},
					"401": {
						"description": "Invalid credentials",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					},
					"503": {
						"description": "Store unavailable",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/auth/sign-out": {
			"post": {
				"tags": [
					"Auth"
				],
				"summary": "Sign out",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"SessionCookie": []
					}
				],
				"responses": {
					"200": {
						"description": "Signed out",
						"schema": {
							"$ref": "#/definitions/lacedsdk.AuthResponse"
						}
					}
				}
			}
		},
		"/v1/auth/session": {
			"get": {
				"tags": [
					"Auth"
				],
				"summary": "Current session",
				"produces": [
					"application/json"
				],
				"security": [
					{
						"SessionCookie": []
					}
				],
				"responses": {
					"200": {
						"description": "The signed-in user or null",
						"schema": {
							"$ref": "#/definitions/lacedsdk.SessionResponse"
						}
					}
				}
			}
		},
		"/v1/products": {
			"get": {
				"tags": [
					"Catalog"
				],
				"summary": "List products",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Brand, case-insensitive",
						"name": "brand",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Category, case-insensitive",
						"name": "category",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Lowest price in cents",
						"name": "min_price",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Highest price in cents",
						"name": "max_price",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Only products with stock",
						"name": "in_stock",
						"in": "query"
					},
					{
						"type": "string",
						"description": "featured, newest, price_asc, price_desc or name_asc",
						"name": "sort",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size, at most 100",
						"name": "limit",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Items to skip",
						"name": "offset",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ProductListResponse"
						}
					},
					"400": {
						"description": "Invalid filter",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					},
					"503": {
						"description": "Store unavailable",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/v1/products/{id}": {
			"get": {
				"tags": [
					"Catalog"
				],
				"summary": "Get product",
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Product id (UUID)",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ProductResponse"
						}
					},
					"404": {
						"description": "No such product",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					},
					"503": {
						"description": "Store unavailable",
						"schema": {
							"$ref": "#/definitions/lacedsdk.ErrorResponse"
						}
					}
				}
			}
		},
		"/livez": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Health Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "status, uptime, version",
						"schema": {
							"$ref": "#/definitions/lacedsdk.HealthResponse"
						}
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"tags": [
					"Health"
				],
				"summary": "Readiness Check Endpoint",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "status, uptime, version, checks",
						"schema": {
							"$ref": "#/definitions/lacedsdk.HealthResponse"
						}
					},
					"503": {
						"description": "service not ready",
						"schema": {
							"$ref": "#/definitions/lacedsdk.HealthResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"lacedsdk.UserSummary": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				}
			}
		},
		"lacedsdk.SignUpRequest": {
			"type": "object",
			"required": [
				"name",
				"email",
				"password"
			],
			"properties": {
				"name": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			}
		},
		"lacedsdk.SignInRequest": {
			"type": "object",
			"required": [
				"email",
				"password"
			],
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				},
				"redirect": {
					"type": "string"
				}
			}
		},
		"lacedsdk.AuthResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/lacedsdk.UserSummary"
				},
				"redirect_to": {
					"type": "string"
				}
			}
		},
		"lacedsdk.SessionResponse": {
			"type": "object",
			"properties": {
				"user": {
					"$ref": "#/definitions/lacedsdk.UserSummary"
				}
			}
		},
		"lacedsdk.Product": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"brand": {
					"type": "string"
				},
				"category": {
					"type": "string"
				},
				"price": {
					"type": "string"
				},
				"description": {
					"type": "string"
				},
				"image_url": {
					"type": "string"
				},
				"in_stock": {
					"type": "integer"
				},
				"created_at": {
					"type": "string"
				}
			}
		},
		"lacedsdk.ProductListResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/lacedsdk.Product"
					}
				},
				"count": {
					"type": "integer"
				}
			}
		},
		"lacedsdk.ProductResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"data": {
					"$ref": "#/definitions/lacedsdk.Product"
				}
			}
		},
		"lacedsdk.ErrorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				},
				"error_description": {
					"type": "string"
				},
				"fields": {
					"type": "object",
					"additionalProperties": {
						"type": "string"
					}
				}
			}
		},
		"lacedsdk.HealthChecks": {
			"type": "object",
			"properties": {
				"database": {
					"type": "string"
				}
			}
		},
		"lacedsdk.HealthResponse": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				},
				"uptime": {
					"type": "string"
				},
				"version": {
					"type": "string"
				},
				"checks": {
					"$ref": "#/definitions/lacedsdk.HealthChecks"
				}
			}
		}
	},
	"securityDefinitions": {
		"SessionCookie": {
			"type": "apiKey",
			"name": "auth_session",
			"in": "cookie"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Laced Storefront API",
	Description:      "Session authentication, guest sessions and the product catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
