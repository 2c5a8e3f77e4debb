// Package docs holds the OpenAPI document served at /swagger. It mirrors the godoc
// annotations of the controllers; regenerate it with `swag init -g cmd/api/main.go` after
// changing them.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/me": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/session": {
            "post": {
                "security": [{"JWTAuth": []}],
                "tags": ["auth"],
                "summary": "Start a browser session",
                "responses": {
                    "204": {"description": "Cookie set"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "delete": {
                "tags": ["auth"],
                "summary": "End the browser session",
                "responses": {
                    "204": {"description": "Cookie cleared"}
                }
            }
        },
        "/programs": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "List programs",
                "parameters": [
                    {"enum": ["unpublished", "active", "retired", "deleted"], "type": "string", "name": "status", "in": "query"},
                    {"enum": ["XSeries", "MicroMasters"], "type": "string", "name": "category", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid filter"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "Create a program",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateProgramRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid request data"},
                    "403": {"description": "Admin role required"},
                    "409": {"description": "Name or marketing slug already in use"}
                }
            }
        },
        "/programs/{id}": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "Get a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Program not found"}
                }
            },
            "patch": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "Partially update a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProgramRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid request data"},
                    "404": {"description": "Program not found"},
                    "409": {"description": "Name or marketing slug already in use"}
                }
            }
        },
        "/programs/{id}/organizations": {
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "tags": ["programs"],
                "summary": "Associate an organization with a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AssociateOrganizationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Program or organization not found"},
                    "409": {"description": "Program already has an organization"}
                }
            }
        },
        "/programs/{id}/course_codes": {
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "tags": ["programs"],
                "summary": "Add a course code to a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddProgramCourseCodeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Course code belongs to another organization"},
                    "404": {"description": "Program or course code not found"},
                    "409": {"description": "Course code already in a program"}
                }
            }
        },
        "/programs/{id}/course_codes/available": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["programs"],
                "summary": "Course codes that can be added to a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Program not found"}
                }
            }
        },
        "/programs/{id}/course_codes/{pccId}": {
            "delete": {
                "security": [{"JWTAuth": []}],
                "tags": ["programs"],
                "summary": "Remove a course code from a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "pccId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Program course code not found"}
                }
            }
        },
        "/programs/{id}/course_codes/{pccId}/run_modes": {
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "tags": ["programs"],
                "summary": "Add a run mode to a program course code",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "pccId", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateRunModeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid request data"},
                    "404": {"description": "Program course code not found"},
                    "409": {"description": "Duplicate run mode"}
                }
            }
        },
        "/programs/{id}/run_modes/{runModeId}": {
            "delete": {
                "security": [{"JWTAuth": []}],
                "tags": ["programs"],
                "summary": "Remove a run mode from a program",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "runModeId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Run mode not found"}
                }
            }
        },
        "/organizations": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["organizations"],
                "summary": "List organizations",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "tags": ["organizations"],
                "summary": "Create an organization",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrganizationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Key or display name already in use"}
                }
            }
        },
        "/course_codes": {
            "get": {
                "security": [{"JWTAuth": []}],
                "produces": ["application/json"],
                "tags": ["course codes"],
                "summary": "List course codes",
                "parameters": [
                    {"type": "integer", "name": "organization_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid organization ID"}
                }
            },
            "post": {
                "security": [{"JWTAuth": []}],
                "consumes": ["application/json"],
                "tags": ["course codes"],
                "summary": "Create a course code",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateCourseCodeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Organization not found"},
                    "409": {"description": "Key already in use for the organization"}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness and database check",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Database unavailable"}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateProgramRequest": {
            "type": "object",
            "required": ["name", "subtitle", "category"],
            "properties": {
                "name": {"type": "string", "maxLength": 64, "example": "Data Science Fundamentals"},
                "subtitle": {"type": "string", "maxLength": 255, "example": "A four course sequence"},
                "marketing_slug": {"type": "string", "maxLength": 255, "example": "data-science-fundamentals"},
                "category": {"type": "string", "enum": ["XSeries", "MicroMasters"]},
                "status": {"type": "string", "enum": ["unpublished", "active", "retired", "deleted"]}
            }
        },
        "dto.UpdateProgramRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 64},
                "subtitle": {"type": "string", "maxLength": 255},
                "marketing_slug": {"type": "string", "maxLength": 255},
                "category": {"type": "string", "enum": ["XSeries", "MicroMasters"]},
                "status": {"type": "string", "enum": ["unpublished", "active", "retired", "deleted"]}
            }
        },
        "dto.AssociateOrganizationRequest": {
            "type": "object",
            "required": ["organization_id"],
            "properties": {
                "organization_id": {"type": "integer", "example": 1}
            }
        },
        "dto.AddProgramCourseCodeRequest": {
            "type": "object",
            "required": ["course_code_id"],
            "properties": {
                "course_code_id": {"type": "integer", "example": 3}
            }
        },
        "dto.CreateRunModeRequest": {
            "type": "object",
            "required": ["course_key", "mode_slug", "start_date"],
            "properties": {
                "course_key": {"type": "string", "maxLength": 255, "example": "course-v1:edX+DemoX+2016_T1"},
                "mode_slug": {"type": "string", "maxLength": 64, "example": "verified"},
                "sku": {"type": "string", "maxLength": 255},
                "lms_url": {"type": "string"},
                "start_date": {"type": "string", "example": "2016-09-01"}
            }
        },
        "dto.CreateOrganizationRequest": {
            "type": "object",
            "required": ["key", "display_name"],
            "properties": {
                "key": {"type": "string", "maxLength": 64, "example": "edX"},
                "display_name": {"type": "string", "maxLength": 128, "example": "edX Inc."}
            }
        },
        "dto.CreateCourseCodeRequest": {
            "type": "object",
            "required": ["organization_id", "key", "display_name"],
            "properties": {
                "organization_id": {"type": "integer", "example": 1},
                "key": {"type": "string", "maxLength": 64, "example": "DemoX"},
                "display_name": {"type": "string", "maxLength": 128, "example": "Demo Course"}
            }
        }
    },
    "securityDefinitions": {
        "JWTAuth": {
            "description": "Identity provider token, as \"JWT <token>\" or \"Bearer <token>\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Programs Admin API",
	Description:      "Administration of programs, their organizations, course codes and run modes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
