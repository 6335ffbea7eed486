package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CMS Report API",
        "description": "Course, student and lecturer reports over the academic records store",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Reports", "description": "Role-scoped report generation and download"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check against the record store",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Record store unreachable"}
                }
            }
        },
        "/api/v1/reports/courses": {
            "get": {
                "tags": ["Reports"],
                "summary": "Course report (office)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/format"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReportEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Record store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/students/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Student report (office)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"$ref": "#/parameters/format"}
                ],
                "responses": {
                    "200": {"description": "OK; an unknown student yields a single not-found line", "schema": {"$ref": "#/definitions/ReportEnvelope"}},
                    "400": {"description": "Invalid ID", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/lecturers/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Lecturer report (office)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"$ref": "#/parameters/format"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReportEnvelope"}},
                    "404": {"description": "Lecturer not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/reports/me": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report for the calling lecturer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"$ref": "#/parameters/format"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ReportEnvelope"}}
                }
            }
        },
        "/api/v1/reports/files/{name}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a persisted csv or txt report (office)",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv", "text/plain"],
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File contents"},
                    "404": {"description": "No such report", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "format": {
            "name": "format",
            "in": "query",
            "type": "string",
            "description": "console, csv or txt; any other value prints raw lines"
        }
    },
    "definitions": {
        "ReportResult": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["course", "student", "lecturer", "lecturer_self"]},
                "name": {"type": "string"},
                "format": {"type": "string", "enum": ["console", "txt", "csv", "raw"]},
                "lines": {"type": "array", "items": {"type": "string"}},
                "location": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ReportEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/ReportResult"},
                "meta": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
