// Package docs holds the OpenAPI description of the planner mock API
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/": {
            "get": {
                "tags": [
                    "health"
                ],
                "summary": "Health check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": [
                    "auth"
                ],
                "summary": "Demo login",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "User and token"
                    },
                    "401": {
                        "description": "Invalid email or password"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "email and password"
                    }
                ]
            }
        },
        "/user": {
            "get": {
                "tags": [
                    "auth"
                ],
                "summary": "Current user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "User"
                    },
                    "401": {
                        "description": "Unauthorized"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "parameters": [
                    {
                        "in": "query",
                        "name": "email",
                        "type": "string"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "patch": {
                "tags": [
                    "auth"
                ],
                "summary": "Update the current user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "fields"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/stats": {
            "get": {
                "tags": [
                    "resources"
                ],
                "summary": "Dashboard stats",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "patch": {
                "tags": [
                    "resources"
                ],
                "summary": "Update dashboard stats",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "fields"
                    }
                ]
            }
        },
        "/tasks/{id}": {
            "patch": {
                "tags": [
                    "tasks"
                ],
                "summary": "Update a task; completion changes adjust stats",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Task"
                    },
                    "404": {
                        "description": "Not found"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "fields"
                    }
                ]
            }
        },
        "/notifications/email": {
            "post": {
                "tags": [
                    "notifications"
                ],
                "summary": "Send an email",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "success and messageId"
                    },
                    "403": {
                        "description": "Address does not match the user"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "to, subject, text, html"
                    }
                ]
            }
        },
        "/notifications/mark-all/{userId}": {
            "patch": {
                "tags": [
                    "notifications"
                ],
                "summary": "Mark all notifications of a user as read",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/ai/suggestions": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Productivity suggestions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ai/apply-recommendations": {
            "post": {
                "tags": [
                    "ai"
                ],
                "summary": "Apply recommendations",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/telegram/config/{userId}": {
            "get": {
                "tags": [
                    "telegram"
                ],
                "summary": "Chat link of a user",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "Config"
                    },
                    "404": {
                        "description": "Not connected"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        },
        "/telegram/connect": {
            "post": {
                "tags": [
                    "telegram"
                ],
                "summary": "Link a chat",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "userId and token"
                    }
                ]
            }
        },
        "/telegram/disconnect": {
            "post": {
                "tags": [
                    "telegram"
                ],
                "summary": "Remove a chat link",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "userId"
                    }
                ]
            }
        },
        "/telegram/settings/{userId}": {
            "patch": {
                "tags": [
                    "telegram"
                ],
                "summary": "Update delivery settings",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "userId",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "settings"
                    }
                ]
            }
        },
        "/telegram/send": {
            "post": {
                "tags": [
                    "telegram"
                ],
                "summary": "Send a chat message",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "chatId, text, parseMode"
                    }
                ]
            }
        },
        "/{collection}": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "List records, filtered by query equality",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "required": true,
                        "type": "string"
                    }
                ]
            },
            "post": {
                "tags": [
                    "collections"
                ],
                "summary": "Create a record",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "201": {
                        "description": "Created"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "record"
                    }
                ]
            }
        },
        "/{collection}/{id}": {
            "get": {
                "tags": [
                    "collections"
                ],
                "summary": "Get a record",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ]
            },
            "patch": {
                "tags": [
                    "collections"
                ],
                "summary": "Merge fields into a record",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "fields"
                    }
                ]
            },
            "put": {
                "tags": [
                    "collections"
                ],
                "summary": "Replace a record",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    },
                    {
                        "in": "body",
                        "name": "body",
                        "required": true,
                        "schema": {
                            "type": "object"
                        },
                        "description": "record"
                    }
                ]
            },
            "delete": {
                "tags": [
                    "collections"
                ],
                "summary": "Delete a record",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "in": "path",
                        "name": "collection",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "in": "path",
                        "name": "id",
                        "required": true,
                        "type": "integer"
                    }
                ]
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type 'Bearer' followed by a space and the token from /login"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Planner mock API",
	Description:      "REST API backing the study planner when it runs online",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
