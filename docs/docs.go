// Package docs registers the OpenAPI document served by the swagger UI.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/sessions": {
            "post": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Create a new session",
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/sessions/{session_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Attach to a session and fetch its current view",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/sessions/{session_id}/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Begin signup and stage a verification code",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted"},
                    "409": {"description": "Email already registered"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/sessions/{session_id}/verify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Submit the verification code",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Verified, tokens issued"},
                    "401": {"description": "Invalid code"}
                }
            }
        },
        "/sessions/{session_id}/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login with email or phone",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Authenticated, tokens issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/sessions/{session_id}/search": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["booking"],
                "summary": "Start an asynchronous offer search",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Search started, results arrive on the websocket"},
                    "422": {"description": "Validation failed"}
                }
            }
        },
        "/sessions/{session_id}/payment": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["booking"],
                "summary": "Confirm payment for the selected offer",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Booking created"},
                    "202": {"description": "Payment processing"},
                    "402": {"description": "Payment declined"}
                }
            }
        },
        "/sessions/{session_id}/ticket": {
            "get": {
                "produces": ["application/pdf"],
                "tags": ["booking"],
                "summary": "Download the e-ticket PDF",
                "parameters": [
                    {"type": "string", "name": "session_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF stream"},
                    "404": {"description": "No ticket issued"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TravelSwift Booking API",
	Description:      "Reservation and session orchestration for cab and bus bookings: signup with OTP verification, asynchronous offer search, multi-path payment and an append-only booking ledger.",
	InfoInstanceName: "booking",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
