// Package docs holds the OpenAPI description served under /swagger.
package docs

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
		"/dashboard": {
			"get": {
				"tags": [
					"dashboard"
				],
				"summary": "Dashboard payload",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Calendar year",
						"name": "year",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start date (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End date (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Site UUID",
						"name": "site_id",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/dashboard/kpis": {
			"get": {
				"tags": [
					"dashboard"
				],
				"summary": "Headline KPIs",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Calendar year",
						"name": "year",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start date (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End date (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Site UUID",
						"name": "site_id",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/dashboard/categories": {
			"get": {
				"tags": [
					"dashboard"
				],
				"summary": "Category breakdown",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Calendar year",
						"name": "year",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start date (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End date (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Site UUID",
						"name": "site_id",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Scope (1-3)",
						"name": "scope",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/reports": {
			"get": {
				"tags": [
					"reports"
				],
				"summary": "List reports",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "page_size",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"reports"
				],
				"summary": "Generate a report",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Report request",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateReportRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/reports/quick": {
			"post": {
				"tags": [
					"reports"
				],
				"summary": "Quick PDF report",
				"produces": [
					"application/pdf"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Quick report request",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.QuickReportRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/reports/{id}": {
			"get": {
				"tags": [
					"reports"
				],
				"summary": "Get a report",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Report ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"reports"
				],
				"summary": "Delete a report and its artifact",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Report ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/reports/{id}/download": {
			"get": {
				"tags": [
					"reports"
				],
				"summary": "Download a report artifact",
				"produces": [
					"application/octet-stream"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"302": {
						"description": "Presigned URL in Location"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"410": {
						"description": "Gone",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Report ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"type": "boolean",
						"description": "Redirect to a presigned storage URL instead of streaming",
						"name": "redirect",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/reports/{id}/preview": {
			"get": {
				"tags": [
					"reports"
				],
				"summary": "Preview a report as PDF",
				"produces": [
					"application/pdf"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Report ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/exports/ademe": {
			"post": {
				"tags": [
					"exports"
				],
				"summary": "ADEME BEGES declaration",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Reporting year",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ExportRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/exports/ghg": {
			"post": {
				"tags": [
					"exports"
				],
				"summary": "GHG Protocol inventory",
				"produces": [
					"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Reporting year",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ExportRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/exports/word": {
			"post": {
				"tags": [
					"exports"
				],
				"summary": "Bilan Carbone narrative report",
				"produces": [
					"application/vnd.openxmlformats-officedocument.wordprocessingml.document"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"502": {
						"description": "Bad Gateway",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Reporting year",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ExportRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/emissions": {
			"get": {
				"tags": [
					"emissions"
				],
				"summary": "List emission records",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Calendar year",
						"name": "year",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start date (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End date (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Site UUID",
						"name": "site_id",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Scope (1-3)",
						"name": "scope",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size",
						"name": "page_size",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"post": {
				"tags": [
					"emissions"
				],
				"summary": "Record an emission",
				"produces": [
					"application/json"
				],
				"responses": {
					"201": {
						"description": "Created"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"description": "Emission record",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.EmissionInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/emissions/export/csv": {
			"get": {
				"tags": [
					"emissions"
				],
				"summary": "Export emission records as CSV",
				"produces": [
					"text/csv"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"description": "Calendar year",
						"name": "year",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Start date (YYYY-MM-DD)",
						"name": "start_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "End date (YYYY-MM-DD)",
						"name": "end_date",
						"in": "query"
					},
					{
						"type": "string",
						"description": "Site UUID",
						"name": "site_id",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Scope (1-3)",
						"name": "scope",
						"in": "query"
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/emissions/{id}": {
			"get": {
				"tags": [
					"emissions"
				],
				"summary": "Get an emission record",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Record ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"emissions"
				],
				"summary": "Update an emission record",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Record ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Emission record",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/service.EmissionInput"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"emissions"
				],
				"summary": "Delete an emission record",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Record ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/settings": {
			"get": {
				"tags": [
					"settings"
				],
				"summary": "List settings",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/settings/{key}": {
			"get": {
				"tags": [
					"settings"
				],
				"summary": "Get a setting",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"description": "Setting key",
						"name": "key",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"put": {
				"tags": [
					"settings"
				],
				"summary": "Update a setting",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				},
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Setting key",
						"name": "key",
						"in": "path",
						"required": true
					},
					{
						"description": "New value",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.UpdateSettingRequest"
						}
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/healthz": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Liveness check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/readyz": {
			"get": {
				"tags": [
					"health"
				],
				"summary": "Readiness check",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK"
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/handler.ErrorResponseBody"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handler.APIError": {
			"type": "object",
			"properties": {
				"code": {
					"type": "string",
					"example": "NOT_FOUND"
				},
				"message": {
					"type": "string",
					"example": "resource not found"
				}
			}
		},
		"handler.ErrorResponseBody": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean",
					"example": false
				},
				"error": {
					"$ref": "#/definitions/handler.APIError"
				}
			}
		},
		"handler.CreateReportRequest": {
			"type": "object",
			"properties": {
				"format": {
					"type": "string",
					"example": "pdf"
				},
				"type": {
					"type": "string",
					"example": "detailed"
				},
				"year": {
					"type": "integer",
					"example": 2024
				},
				"site_id": {
					"type": "string"
				},
				"async": {
					"type": "boolean"
				},
				"notify_email": {
					"type": "string",
					"example": "rse@acme.fr"
				}
			},
			"required": [
				"format",
				"year"
			]
		},
		"handler.QuickReportRequest": {
			"type": "object",
			"properties": {
				"type": {
					"type": "string",
					"example": "summary"
				},
				"start_date": {
					"type": "string",
					"example": "2024-01-01"
				},
				"end_date": {
					"type": "string",
					"example": "2024-06-30"
				},
				"site_id": {
					"type": "string"
				}
			},
			"required": [
				"type",
				"start_date",
				"end_date"
			]
		},
		"handler.ExportRequest": {
			"type": "object",
			"properties": {
				"year": {
					"type": "integer",
					"example": 2024
				},
				"site_id": {
					"type": "string"
				}
			},
			"required": [
				"year"
			]
		},
		"handler.UpdateSettingRequest": {
			"type": "object",
			"properties": {
				"value": {
					"type": "string",
					"example": "Carbex"
				}
			},
			"required": [
				"value"
			]
		},
		"service.EmissionInput": {
			"type": "object",
			"properties": {
				"site_id": {
					"type": "string"
				},
				"category_id": {
					"type": "string"
				},
				"scope": {
					"type": "integer",
					"example": 2
				},
				"date": {
					"type": "string",
					"example": "2024-03-15T00:00:00Z"
				},
				"source_name": {
					"type": "string",
					"example": "EDF"
				},
				"quantity": {
					"type": "number",
					"example": 12000
				},
				"unit": {
					"type": "string",
					"example": "kWh"
				},
				"factor_value": {
					"type": "number",
					"example": 0.052
				},
				"factor_source": {
					"type": "string",
					"example": "Base Empreinte"
				},
				"scope_2_method": {
					"type": "string",
					"example": "location_based"
				},
				"is_estimated": {
					"type": "boolean"
				}
			},
			"required": [
				"category_id",
				"scope",
				"date",
				"source_name",
				"unit"
			]
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and the JWT.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Carbex API",
	Description:      "Carbon footprint dashboard, emission records and regulatory report exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
