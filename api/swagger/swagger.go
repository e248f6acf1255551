package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMS Console Gateway",
        "description": "Role-scoped console views over the auth, user and platform services",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Console sessions"},
        {"name": "Health", "description": "Liveness, readiness and metrics"},
        {"name": "Dashboard", "description": "Role dashboards"},
        {"name": "Schools", "description": "Platform schools and school admins"},
        {"name": "People", "description": "Teachers, students and parents"},
        {"name": "Classes", "description": "Classes, sections and subjects"},
        {"name": "Requests", "description": "Tickets and leave"},
        {"name": "Attendance", "description": "Marking sheets, check-in and reports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness of the cache and credential stores",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign in to the console",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Signed in; Location names the role dashboard", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Sign out of the console",
                "responses": {"200": {"description": "Signed out", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/session": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current console session and navigation menu",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "No active session", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/school-admin/teachers": {
            "get": {
                "tags": ["People"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "columns", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Login required", "schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"description": "Wrong role", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/school-admin/students/search": {
            "get": {
                "tags": ["People"],
                "summary": "Search students as the user types",
                "parameters": [
                    {"name": "q", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK; meta.searched tells whether the backend was queried", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/school-admin/attendance/sheet": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Save a simple attendance sheet in one request",
                "responses": {
                    "200": {"description": "Every record saved", "schema": {"$ref": "#/definitions/Envelope"}},
                    "207": {"description": "Some records failed", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "The sheet is already being submitted", "schema": {"$ref": "#/definitions/Envelope"}},
                    "422": {"description": "No record saved", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/school-admin/attendance/checkin/out": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Close the open check-in of a user",
                "responses": {
                    "200": {"description": "Checked out", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "No open check-in", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["password"],
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "count": {"type": "integer"},
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
