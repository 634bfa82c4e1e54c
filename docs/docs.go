// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/schools": {
            "get": {"tags": ["schools"], "summary": "List schools", "parameters": [
                {"name": "q", "in": "query", "type": "string"},
                {"name": "active", "in": "query", "type": "boolean"},
                {"$ref": "#/parameters/limit"}, {"$ref": "#/parameters/offset"}, {"$ref": "#/parameters/order"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["schools"], "summary": "Create a school", "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/schools/{id}": {
            "get": {"tags": ["schools"], "summary": "Get a school", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}},
            "put": {"tags": ["schools"], "summary": "Update a school", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["schools"], "summary": "Delete a school", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}, "409": {"$ref": "#/responses/Error"}}}
        },
        "/schools/{id}/students": {
            "get": {"tags": ["students"], "summary": "List students of a school", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}}
        },
        "/teachers": {
            "get": {"tags": ["teachers"], "summary": "List teachers", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["teachers"], "summary": "Create a teacher", "responses": {"201": {"description": "Created"}}}
        },
        "/teachers/{id}": {
            "get": {"tags": ["teachers"], "summary": "Get a teacher", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["teachers"], "summary": "Update a teacher", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["teachers"], "summary": "Delete a teacher", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/students": {
            "get": {"tags": ["students"], "summary": "List students", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["students"], "summary": "Create a student", "responses": {"201": {"description": "Created"}}}
        },
        "/students/{id}": {
            "get": {"tags": ["students"], "summary": "Get a student", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["students"], "summary": "Update a student", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["students"], "summary": "Delete a student", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/students/{id}/attendance": {
            "get": {"tags": ["attendance"], "summary": "Attendance history and summary of a student", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/lessons": {
            "get": {"tags": ["lessons"], "summary": "List lessons", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["lessons"], "summary": "Create a lesson", "responses": {"201": {"description": "Created"}}}
        },
        "/lessons/{id}": {
            "get": {"tags": ["lessons"], "summary": "Get a lesson", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["lessons"], "summary": "Update a lesson", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["lessons"], "summary": "Delete a lesson", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/schedules": {
            "get": {"tags": ["schedules"], "summary": "List schedules", "parameters": [
                {"name": "from", "in": "query", "type": "string", "format": "date"},
                {"name": "to", "in": "query", "type": "string", "format": "date"},
                {"name": "status", "in": "query", "type": "string", "enum": ["scheduled", "completed", "cancelled", "rescheduled"]},
                {"name": "school_id", "in": "query", "type": "string"},
                {"name": "teacher_id", "in": "query", "type": "string"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["schedules"], "summary": "Create a schedule", "responses": {"201": {"description": "Created"}}}
        },
        "/schedules/{id}": {
            "get": {"tags": ["schedules"], "summary": "Get a schedule", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["schedules"], "summary": "Update a schedule", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["schedules"], "summary": "Delete a schedule", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/schedules/{id}/status": {
            "patch": {"tags": ["schedules"], "summary": "Change schedule status", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}}
        },
        "/schedules/{id}/attendance": {
            "get": {"tags": ["attendance"], "summary": "Records of a schedule", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["attendance"], "summary": "Bulk upsert records of a schedule", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/Error"}}}
        },
        "/schedules/{id}/statistics": {
            "get": {"tags": ["attendance"], "summary": "Attendance statistics of a schedule", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "has_data is false unless the schedule is completed"}}}
        },
        "/attendance": {
            "post": {"tags": ["attendance"], "summary": "Upsert one record", "responses": {"200": {"description": "Updated"}, "201": {"description": "Created"}, "409": {"description": "Concurrent write, retry"}}}
        },
        "/attendance/{id}": {
            "delete": {"tags": ["attendance"], "summary": "Delete a record", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/cashflow/categories": {
            "get": {"tags": ["cashflow"], "summary": "List categories", "parameters": [{"name": "all", "in": "query", "type": "boolean"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["cashflow"], "summary": "Create a category", "responses": {"201": {"description": "Created"}}}
        },
        "/cashflow/categories/{id}": {
            "get": {"tags": ["cashflow"], "summary": "Get a category", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["cashflow"], "summary": "Update a category", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["cashflow"], "summary": "Disable a category", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/cashflow/entries": {
            "get": {"tags": ["cashflow"], "summary": "List entries", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["cashflow"], "summary": "Create an entry", "responses": {"201": {"description": "Created"}}}
        },
        "/cashflow/entries/{id}": {
            "get": {"tags": ["cashflow"], "summary": "Get an entry", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["cashflow"], "summary": "Update an entry", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["cashflow"], "summary": "Delete an entry", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/cashflow/summary": {
            "get": {"tags": ["cashflow"], "summary": "Income, expense and balance for a range", "responses": {"200": {"description": "OK"}}}
        },
        "/cashflow/export": {
            "get": {"tags": ["cashflow"], "summary": "CSV export (UTF-8 with BOM)", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard/overview": {
            "get": {"tags": ["dashboard"], "summary": "Counts, upcoming sessions, month balance", "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard/calendar": {
            "get": {"tags": ["dashboard"], "summary": "Month grid of schedules with statistics", "parameters": [
                {"name": "year", "in": "query", "type": "integer"},
                {"name": "month", "in": "query", "type": "integer", "minimum": 1, "maximum": 12},
                {"name": "school_id", "in": "query", "type": "string"}
            ], "responses": {"200": {"description": "OK"}}}
        }
    },
    "parameters": {
        "id": {"name": "id", "in": "path", "required": true, "type": "string"},
        "limit": {"name": "limit", "in": "query", "type": "integer", "default": 50, "maximum": 200},
        "offset": {"name": "offset", "in": "query", "type": "integer", "default": 0},
        "order": {"name": "order", "in": "query", "type": "string", "enum": ["asc", "desc"]}
    },
    "responses": {
        "Error": {"description": "Error", "schema": {"$ref": "#/definitions/ErrorDTO"}}
    },
    "definitions": {
        "ErrorDTO": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string", "enum": ["INVALID_ARGUMENT", "NOT_FOUND", "CONFLICT", "INTERNAL"]},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "BB Society API",
	Description:      "Schools, teachers, students, lessons, schedules, attendance and cash flow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
