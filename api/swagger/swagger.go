package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Smart Campus Scheduling API",
        "description": "Timetable generation, substitution and exam seating for academic departments.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Weekly grid generation and persistence"},
        {"name": "Substitution", "description": "Absent teacher coverage"},
        {"name": "Seating", "description": "Exam seating allocation"},
        {"name": "Exports", "description": "CSV and PDF downloads"},
        {"name": "Teachers", "description": "Teacher roster management"},
        {"name": "Classrooms", "description": "Classroom management"},
        {"name": "TimeSlots", "description": "Teaching period management"},
        {"name": "Students", "description": "Student records"},
        {"name": "Departments", "description": "Departments and sections"},
        {"name": "Absences", "description": "Teacher absence tracking"},
        {"name": "Notifications", "description": "Outbound notification log"}
    ],
    "paths": {
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable proposal",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable/save": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Persist a reviewed timetable",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveTimetableRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Get the stored timetable of a section",
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "sectionId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/substitution/candidates": {
            "get": {
                "tags": ["Substitution"],
                "summary": "List conflict-free substitute candidates",
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "sectionId", "in": "query", "required": true, "type": "string"},
                    {"name": "teacherId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/substitution/apply": {
            "post": {
                "tags": ["Substitution"],
                "summary": "Substitute an absent teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubstituteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Substitute unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seating/generate": {
            "post": {
                "tags": ["Seating"],
                "summary": "Generate an exam seating plan",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateSeatingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "412": {"description": "Not enough seating capacity", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/timetable.csv": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a section timetable as CSV",
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "sectionId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/exports/timetable.pdf": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a section timetable as a landscape PDF grid",
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "sectionId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF file"}
                }
            }
        },
        "/exports/seating.csv": {
            "post": {
                "tags": ["Exports"],
                "summary": "Download a seating plan as CSV",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportSeatingRequest"}}
                ],
                "responses": {
                    "200": {"description": "CSV file"}
                }
            }
        },
        "/absences": {
            "get": {
                "tags": ["Absences"],
                "summary": "List absences of a department",
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "unhandled", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Absences"],
                "summary": "Mark a teacher absent",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MarkAbsentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/absences/handle": {
            "post": {
                "tags": ["Absences"],
                "summary": "Resolve an absence with a substitute",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/HandleAbsenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List department notifications, newest first",
                "parameters": [
                    {"name": "departmentId", "in": "query", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "departmentId": {"type": "string"},
                "sectionId": {"type": "string"},
                "teacherIds": {"type": "array", "items": {"type": "string"}},
                "classroomIds": {"type": "array", "items": {"type": "string"}},
                "days": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["departmentId", "sectionId", "teacherIds", "classroomIds", "days"]
        },
        "SaveTimetableRequest": {
            "type": "object",
            "properties": {
                "departmentId": {"type": "string"},
                "sectionId": {"type": "string"},
                "entries": {"type": "array", "items": {"$ref": "#/definitions/TimetableEntryPayload"}}
            },
            "required": ["departmentId", "sectionId", "entries"]
        },
        "TimetableEntryPayload": {
            "type": "object",
            "properties": {
                "day": {"type": "string"},
                "timeSlot": {"type": "string"},
                "subject": {"type": "string"},
                "teacherId": {"type": "string"},
                "teacherName": {"type": "string"},
                "classroomId": {"type": "string"},
                "classroomName": {"type": "string"}
            }
        },
        "SubstituteRequest": {
            "type": "object",
            "properties": {
                "departmentId": {"type": "string"},
                "sectionId": {"type": "string"},
                "absentTeacherId": {"type": "string"},
                "substituteTeacherId": {"type": "string"}
            },
            "required": ["departmentId", "sectionId", "absentTeacherId", "substituteTeacherId"]
        },
        "GenerateSeatingRequest": {
            "type": "object",
            "properties": {
                "examName": {"type": "string"},
                "departmentIds": {"type": "array", "items": {"type": "string"}},
                "classroomIds": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["examName", "departmentIds", "classroomIds"]
        },
        "ExportSeatingRequest": {
            "type": "object",
            "properties": {
                "examName": {"type": "string"},
                "entries": {"type": "array", "items": {"type": "object"}}
            },
            "required": ["examName", "entries"]
        },
        "MarkAbsentRequest": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "string"},
                "absentDate": {"type": "string", "format": "date-time"},
                "reason": {"type": "string"}
            },
            "required": ["teacherId", "absentDate"]
        },
        "HandleAbsenceRequest": {
            "type": "object",
            "properties": {
                "absenceId": {"type": "string"},
                "sectionId": {"type": "string"},
                "substituteTeacherId": {"type": "string"}
            },
            "required": ["absenceId", "sectionId", "substituteTeacherId"]
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
                "pagination": {"$ref": "#/definitions/Pagination"}
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
