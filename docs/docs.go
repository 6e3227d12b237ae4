// Package docs holds the OpenAPI description served at /swagger.
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
        "/products": {
            "get": {
                "description": "Catalog page: filters derived from the query, products and categories.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List catalog products",
                "parameters": [
                    {"type": "string", "description": "free text search", "name": "search", "in": "query"},
                    {"type": "string", "description": "category id", "name": "category", "in": "query"},
                    {"type": "string", "description": "legacy alias of category", "name": "categoryId", "in": "query"},
                    {"type": "string", "description": "minimum price", "name": "minPrice", "in": "query"},
                    {"type": "string", "description": "maximum price", "name": "maxPrice", "in": "query"},
                    {"type": "string", "description": "true or false", "name": "featured", "in": "query"},
                    {"type": "string", "description": "true to list active products only", "name": "isActive", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.CatalogPage"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/products/filters": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Commit filters and get the canonical catalog location",
                "parameters": [
                    {"description": "current filters and an optional single-field edit", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.FilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.FilterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Clear every filter",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.FilterResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Product detail with gallery and total",
                "parameters": [
                    {"type": "integer", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "selected quantity", "name": "quantity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/catalog.Detail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add a product to the visitor's cart",
                "parameters": [
                    {"description": "item", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.AddItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.AddItemResponse"}},
                    "303": {"description": "Login required"},
                    "409": {"description": "Out of stock or an add already in progress", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "502": {"description": "Cart unavailable", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "product.HTTPError": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "not found"}}
        },
        "catalog.Filters": {
            "type": "object",
            "properties": {
                "search": {"type": "string"},
                "categoryId": {"type": "string"},
                "minPrice": {"type": "string"},
                "maxPrice": {"type": "string"},
                "featured": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "catalog.Summary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "rating": {"type": "number"},
                "imageUrl": {"type": "string"},
                "stock": {"type": "integer"},
                "featured": {"type": "boolean"},
                "categoryName": {"type": "string"}
            }
        },
        "catalog.Detail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "images": {"type": "array", "items": {"type": "string"}},
                "inStock": {"type": "boolean"},
                "quantity": {"type": "integer"},
                "total": {"type": "number"}
            }
        },
        "main.CatalogPage": {
            "type": "object",
            "properties": {
                "filters": {"$ref": "#/definitions/catalog.Filters"},
                "location": {"type": "string", "example": "/products?category=3&featured=true"},
                "products": {"type": "array", "items": {"$ref": "#/definitions/catalog.Summary"}},
                "count": {"type": "integer"}
            }
        },
        "main.FilterRequest": {
            "type": "object",
            "properties": {
                "filters": {"$ref": "#/definitions/catalog.Filters"},
                "field": {"type": "string", "example": "minPrice"},
                "value": {"type": "string", "example": "10"}
            }
        },
        "main.FilterResponse": {
            "type": "object",
            "properties": {
                "filters": {"$ref": "#/definitions/catalog.Filters"},
                "location": {"type": "string"},
                "refresh": {"type": "boolean"}
            }
        },
        "main.AddItemRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "integer", "example": 3},
                "quantity": {"type": "integer", "example": 2}
            }
        },
        "main.AddItemResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "2 Keyboard(s) added to cart"},
                "quantity": {"type": "integer"}
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
	Title:            "Storefront Catalog API",
	Description:      "Catalog browsing, filter links and add-to-cart for the storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
