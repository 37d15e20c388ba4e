package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Roster API",
        "description": "Lists, filters and enrolls students.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Roster listing, enrollment and export"},
        {"name": "Operations", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Operations"],
                "summary": "Request, cache and query statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SystemMetrics"}}
                }
            }
        },
        "/": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "description": "Filters by cohort and course only when both are supplied.",
                "parameters": [
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "description": "Filters by cohort and course only when both are supplied.",
                "parameters": [
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Student"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/APIError"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/create": {
            "post": {
                "tags": ["Students"],
                "summary": "Create student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Student"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export roster",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"], "default": "csv"},
                    {"name": "cohort", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Attachment", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/catalog": {
            "get": {
                "tags": ["Students"],
                "summary": "Enrollment catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Catalog"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "cohort": {"type": "string", "example": "AY 2024-25"},
                "courses": {"type": "array", "items": {"type": "string"}, "example": ["CBSE 9 Mathematics"]},
                "dateJoined": {"type": "string", "format": "date-time"},
                "lastLogin": {"type": "string", "format": "date-time", "x-nullable": true}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["name", "cohort", "courses"],
            "properties": {
                "name": {"type": "string"},
                "cohort": {"type": "string"},
                "courses": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "CatalogClass": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "CBSE 9"},
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Catalog": {
            "type": "object",
            "properties": {
                "cohorts": {"type": "array", "items": {"type": "string"}},
                "classes": {"type": "array", "items": {"$ref": "#/definitions/CatalogClass"}}
            }
        },
        "SystemMetrics": {
            "type": "object",
            "properties": {
                "cacheHitRatio": {"type": "number"},
                "cacheHits": {"type": "integer"},
                "cacheMisses": {"type": "integer"},
                "requestsTotal": {"type": "integer"},
                "averageRequestDurationMs": {"type": "number"},
                "dbQueryCount": {"type": "integer"},
                "averageDbQueryDurationMs": {"type": "number"},
                "goroutines": {"type": "integer"},
                "generatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
