// Package docs registers the swagger document served at /swagger/*any.
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
        "/locations/new": {
            "post": {
                "description": "Resolves addressString and stores it under name when the provider returns exactly one match.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Resolve and store a location",
                "parameters": [
                    {
                        "description": "Location query",
                        "name": "query",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.LocationQuery"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GaspLocation"}},
                    "204": {"description": "No match or more than one match"},
                    "500": {"description": "Provider, persistence or unexpected failure"}
                }
            }
        },
        "/locations/lookup": {
            "post": {
                "description": "Returns the provider's full result when addressString resolves to exactly one match. Nothing is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Resolve a location",
                "parameters": [
                    {
                        "description": "Location query",
                        "name": "query",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.LocationQuery"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GeocodeResult"}},
                    "204": {"description": "No match or more than one match"},
                    "500": {"description": "Provider or unexpected failure"}
                }
            }
        },
        "/locations/latlng": {
            "post": {
                "description": "Returns only lat/lng when addressString resolves to exactly one match. Nothing is stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Resolve coordinates",
                "parameters": [
                    {
                        "description": "Location query",
                        "name": "query",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.LocationQuery"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Location"}},
                    "204": {"description": "No match or more than one match"},
                    "500": {"description": "Provider or unexpected failure"}
                }
            }
        },
        "/locations/nearest": {
            "get": {
                "description": "Returns the stored location closest to lat/lng within 10km.",
                "produces": ["application/json"],
                "tags": ["locations"],
                "summary": "Nearest stored location",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lng", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.GaspLocation"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.LocationQuery": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "addressString": {"type": "string"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "lat": {"type": "number"},
                "lng": {"type": "number"}
            }
        },
        "models.GaspLocation": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "formattedAddress": {"type": "string"},
                "location": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.AddressComponent": {
            "type": "object",
            "properties": {
                "longName": {"type": "string"},
                "shortName": {"type": "string"},
                "types": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Bounds": {
            "type": "object",
            "properties": {
                "southwest": {"$ref": "#/definitions/models.Location"},
                "northeast": {"$ref": "#/definitions/models.Location"}
            }
        },
        "models.Geometry": {
            "type": "object",
            "properties": {
                "location": {"$ref": "#/definitions/models.Location"},
                "locationType": {"type": "string"},
                "viewport": {"$ref": "#/definitions/models.Bounds"},
                "bounds": {"$ref": "#/definitions/models.Bounds"}
            }
        },
        "models.GeocodeResult": {
            "type": "object",
            "properties": {
                "types": {"type": "array", "items": {"type": "string"}},
                "formattedAddress": {"type": "string"},
                "addressComponents": {"type": "array", "items": {"$ref": "#/definitions/models.AddressComponent"}},
                "geometry": {"$ref": "#/definitions/models.Geometry"},
                "placeId": {"type": "string"},
                "partialMatch": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "gasp location API",
	Description:      "Resolves free-form addresses through the Google Geocoding API and stores single matches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
