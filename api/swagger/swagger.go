package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassForge Timetable API",
        "description": "Genetic-algorithm weekly class timetable generator",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Timetable validation, generation and export"}
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
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/timetable/validate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Validate a timetable request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/{institutionId}": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the latest timetable for an institution",
                "parameters": [
                    {"name": "institutionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/export/{institutionId}": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Export the latest timetable",
                "parameters": [
                    {"name": "institutionId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "produces": ["text/csv", "application/pdf"],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CourseRequest": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "teacher": {"type": "string"},
                "lectures_per_week": {"type": "integer"},
                "type": {"type": "string", "enum": ["lecture", "lab"]},
                "lab_duration": {"type": "integer"}
            },
            "required": ["code", "name", "teacher", "lectures_per_week"]
        },
        "ResourcesRequest": {
            "type": "object",
            "properties": {
                "classrooms": {"type": "integer"},
                "labs": {"type": "integer"}
            }
        },
        "TimetableRequest": {
            "type": "object",
            "properties": {
                "institution_id": {"type": "string"},
                "working_days": {"type": "array", "items": {"type": "string"}},
                "lecture_duration": {"type": "integer", "enum": [30, 45, 60, 90, 120]},
                "start_time": {"type": "string", "example": "09:15"},
                "end_time": {"type": "string", "example": "16:55"},
                "lunch_start": {"type": "string", "example": "12:30"},
                "lunch_end": {"type": "string", "example": "13:30"},
                "courses": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/CourseRequest"}
                },
                "resources": {"$ref": "#/definitions/ResourcesRequest"},
                "custom_constraints": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["institution_id", "courses"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
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
