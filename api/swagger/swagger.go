package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIMAK Gateway",
        "description": "Gateway for the SIMAK academic service: elective submission workflow and event management",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Identity", "description": "Authenticated user profile"},
        {"name": "Elective", "description": "Elective (peminatan) submission workflow"},
        {"name": "Events", "description": "Enrollment event management"},
        {"name": "Audit", "description": "Gateway audit trail"}
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
        "/identity/detail": {
            "get": {
                "tags": ["Identity"],
                "summary": "Current user profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/elective/participation": {
            "get": {
                "tags": ["Elective"],
                "summary": "Resolve the student's elective standing",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/elective/choices": {
            "post": {
                "tags": ["Elective"],
                "summary": "Submit tier choices for the active event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Submission already exists"}
                }
            }
        },
        "/elective/choices/status": {
            "put": {
                "tags": ["Elective"],
                "summary": "Apply per-tier review decisions to a submission",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/elective/submissions/{eventId}": {
            "get": {
                "tags": ["Elective"],
                "summary": "List an event's submissions with review progress",
                "parameters": [
                    {"name": "eventId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/elective/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List enrollment events",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create enrollment event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/elective/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get enrollment event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update enrollment event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete enrollment event",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Event has submissions"}
                }
            }
        },
        "/elective/events/{id}/export": {
            "get": {
                "tags": ["Events"],
                "summary": "Export an event's submission recap",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Recap file"}
                }
            }
        },
        "/audit-logs": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit records",
                "parameters": [
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "userId", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "TierOption": {
            "type": "object",
            "properties": {
                "subject_id": {"type": "string"},
                "subject_name": {"type": "string"},
                "capacity": {"type": "integer"}
            }
        },
        "TierPair": {
            "type": "object",
            "properties": {
                "option_a": {"$ref": "#/definitions/TierOption"},
                "option_b": {"$ref": "#/definitions/TierOption"}
            }
        },
        "EnrollmentEvent": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "cohort_year": {"type": "integer"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "submissions_count": {"type": "integer"},
                "status": {"type": "string", "enum": ["NOT_STARTED", "ACTIVE", "ENDED"]},
                "tiers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TierPair"}
                }
            }
        },
        "TierChoice": {
            "type": "object",
            "properties": {
                "option": {"type": "string", "enum": ["A", "B"]},
                "subject_id": {"type": "string"},
                "subject_name": {"type": "string"},
                "decision": {"type": "boolean", "x-nullable": true},
                "reviewer_note": {"type": "string"}
            }
        },
        "Submission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_id": {"type": "string"},
                "student_name": {"type": "string"},
                "event_id": {"type": "string"},
                "submitted_at": {"type": "string"},
                "tiers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TierChoice"}
                }
            }
        },
        "SubmitRequest": {
            "type": "object",
            "properties": {
                "event_id": {"type": "string"},
                "subjects": {
                    "type": "array",
                    "items": {"type": "string"},
                    "minItems": 4,
                    "maxItems": 4
                }
            },
            "required": ["event_id", "subjects"]
        },
        "ReviewRequest": {
            "type": "object",
            "properties": {
                "submission_id": {"type": "string"},
                "decisions": {
                    "type": "array",
                    "items": {"type": "string", "enum": ["accepted", "rejected"]},
                    "minItems": 4,
                    "maxItems": 4
                },
                "note": {"type": "string"}
            },
            "required": ["submission_id", "decisions"]
        },
        "EventRequest": {
            "type": "object",
            "properties": {
                "cohort_year": {"type": "integer"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "tiers": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/TierPair"},
                    "minItems": 4,
                    "maxItems": 4
                }
            },
            "required": ["cohort_year", "start_date", "end_date", "tiers"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
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
