package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Smart Scheduler API",
        "description": "Course timetabling service: AI-assisted generation, conflict validation and group allocation",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Schedules", "description": "Schedule version lifecycle"},
        {"name": "Groups", "description": "Cohort group allocation"},
        {"name": "Students", "description": "Roster"},
        {"name": "Exports", "description": "Timetable downloads"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Get the authenticated user's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/generate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Generate a timetable proposal for every group of a cohort",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/save": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Persist a generated proposal as a new schedule version",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Proposal has unresolved violations"}
                }
            }
        },
        "/schedules/validate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Validate an edit buffer without persisting it",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedule versions of a cohort",
                "parameters": [
                    {"name": "level", "in": "query", "required": true, "type": "integer"},
                    {"name": "semester", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/approved": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get the approved timetable of a cohort",
                "parameters": [
                    {"name": "level", "in": "query", "required": true, "type": "integer"},
                    {"name": "semester", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No approved schedule"}
                }
            }
        },
        "/schedules/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get a schedule version with its grouped sections",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a non-approved schedule version",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Approved versions cannot be deleted"}
                }
            }
        },
        "/schedules/{id}/sections": {
            "put": {
                "tags": ["Schedules"],
                "summary": "Replace a version's section list after validation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceSectionsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Replaced", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Edit buffer has violations; nothing persisted"}
                }
            }
        },
        "/schedules/{id}/finalize": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Promote a violation-free draft to GENERATED",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/FinalizeScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Draft still has violations"}
                }
            }
        },
        "/schedules/{id}/approve": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Approve a generated schedule version",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Only generated versions can be approved"}
                }
            }
        },
        "/schedules/{id}/export/csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a schedule version as CSV",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/schedules/{id}/export/pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a schedule version as PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/groups/calculate": {
            "post": {
                "tags": ["Groups"],
                "summary": "Recalculate the group setting for a cohort",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CalculateGroupsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/assign": {
            "post": {
                "tags": ["Groups"],
                "summary": "Distribute regular students across the configured groups",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignGroupsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "No group setting for this cohort"}
                }
            }
        },
        "/groups/setting": {
            "get": {
                "tags": ["Groups"],
                "summary": "Get the stored group setting of a cohort",
                "parameters": [
                    {"name": "level", "in": "query", "required": true, "type": "integer"},
                    {"name": "semester", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students with roster filters",
                "parameters": [
                    {"name": "level", "in": "query", "type": "integer"},
                    {"name": "irregular", "in": "query", "type": "boolean"},
                    {"name": "group", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "TimeWindow": {
            "type": "object",
            "properties": {
                "day": {"type": "string", "enum": ["MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"]},
                "start": {"type": "string", "example": "09:00"},
                "end": {"type": "string", "example": "10:30"}
            }
        },
        "Section": {
            "type": "object",
            "properties": {
                "course_code": {"type": "string"},
                "section_label": {"type": "string"},
                "timeslot": {"$ref": "#/definitions/TimeWindow"},
                "room": {"type": "string"},
                "student_count": {"type": "integer"},
                "capacity": {"type": "integer"},
                "instructor_id": {"type": "string"}
            }
        },
        "GenerateScheduleRequest": {
            "type": "object",
            "properties": {
                "level": {"type": "integer"},
                "semester": {"type": "string"},
                "students_per_course": {"type": "object", "additionalProperties": {"type": "integer"}},
                "available_rooms": {"type": "array", "items": {"type": "string"}},
                "blocked_slots": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "allowed_days": {"type": "array", "items": {"type": "string"}},
                "allowed_time_range": {"$ref": "#/definitions/TimeWindow"},
                "rules": {"type": "array", "items": {"type": "string"}},
                "objective_priorities": {"type": "object", "additionalProperties": {"type": "number"}}
            },
            "required": ["level", "semester", "students_per_course", "available_rooms"]
        },
        "SaveScheduleRequest": {
            "type": "object",
            "properties": {
                "proposal_id": {"type": "string"}
            },
            "required": ["proposal_id"]
        },
        "GroupSectionsInput": {
            "type": "object",
            "properties": {
                "group_name": {"type": "string"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/Section"}}
            },
            "required": ["group_name"]
        },
        "ValidateScheduleRequest": {
            "type": "object",
            "properties": {
                "groups": {"type": "array", "items": {"$ref": "#/definitions/GroupSectionsInput"}},
                "blackout_windows": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "allowed_days": {"type": "array", "items": {"type": "string"}},
                "allowed_time_range": {"$ref": "#/definitions/TimeWindow"}
            },
            "required": ["groups"]
        },
        "ReplaceSectionsRequest": {
            "type": "object",
            "properties": {
                "groups": {"type": "array", "items": {"$ref": "#/definitions/GroupSectionsInput"}},
                "blackout_windows": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "allowed_days": {"type": "array", "items": {"type": "string"}},
                "allowed_time_range": {"$ref": "#/definitions/TimeWindow"}
            },
            "required": ["groups"]
        },
        "FinalizeScheduleRequest": {
            "type": "object",
            "properties": {
                "blackout_windows": {"type": "array", "items": {"$ref": "#/definitions/TimeWindow"}},
                "allowed_days": {"type": "array", "items": {"type": "string"}},
                "allowed_time_range": {"$ref": "#/definitions/TimeWindow"}
            }
        },
        "CalculateGroupsRequest": {
            "type": "object",
            "properties": {
                "level": {"type": "integer"},
                "semester": {"type": "string"},
                "students_per_group": {"type": "integer"}
            },
            "required": ["level", "semester", "students_per_group"]
        },
        "AssignGroupsRequest": {
            "type": "object",
            "properties": {
                "level": {"type": "integer"},
                "semester": {"type": "string"}
            },
            "required": ["level", "semester"]
        },
        "Violation": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["ROOM_CONFLICT", "BLACKOUT_OVERLAP", "DUPLICATE_COURSE", "RANGE_POLICY"]},
                "message": {"type": "string"},
                "sections": {"type": "array", "items": {"type": "object"}}
            }
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
