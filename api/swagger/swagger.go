package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Instructly Availability API",
        "description": "Bitmap-based weekly instructor availability engine",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Availability", "description": "Instructor weekly availability"},
        {"name": "Bookings", "description": "Booking admission checks"}
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
        "/instructors/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Get decoded week availability with version token",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "week_start", "in": "query", "required": true, "type": "string", "description": "Monday, YYYY-MM-DD"},
                    {"name": "slots", "in": "query", "type": "boolean", "description": "Expand into half-hour slots"},
                    {"name": "cache", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Week view", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid week_start", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Availability"],
                "summary": "Save week availability under optimistic concurrency",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveWeekRequest"}}
                ],
                "responses": {
                    "200": {"description": "Write counts and new version", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Overlap or version conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instructors/{id}/availability/dates": {
            "post": {
                "tags": ["Availability"],
                "summary": "Add availability windows on a single date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Write counts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/instructors/{id}/availability/blackouts": {
            "post": {
                "tags": ["Availability"],
                "summary": "Black out a date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BlackoutRequest"}}
                ],
                "responses": {
                    "200": {"description": "Write counts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/validate": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Check whether a proposed booking slot is open",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Structured availability result", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Window": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "example": "09:00:00"},
                "end": {"type": "string", "example": "12:00:00"}
            }
        },
        "SaveWeekRequest": {
            "type": "object",
            "properties": {
                "week_start": {"type": "string", "example": "2026-09-07"},
                "windows": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/Window"}}},
                "base_version": {"type": "string"},
                "override": {"type": "boolean"},
                "clear_existing": {"type": "boolean"},
                "clear_days": {"type": "array", "items": {"type": "string"}}
            }
        },
        "AddDateRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-09-08"},
                "windows": {"type": "array", "items": {"$ref": "#/definitions/Window"}}
            }
        },
        "BlackoutRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-09-08"}
            }
        },
        "ValidateRequest": {
            "type": "object",
            "properties": {
                "instructor_id": {"type": "string"},
                "date": {"type": "string"},
                "start": {"type": "string"},
                "end": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "object"}
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
