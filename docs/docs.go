// Package docs registers the catalog-service OpenAPI document with swag.
// Regenerate with: swag init -g cmd/catalog-service/main.go
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
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "categories, comma separated", "name": "category", "in": "query"},
                    {"type": "string", "description": "brands, comma separated", "name": "brand", "in": "query"},
                    {"type": "string", "description": "price bands such as 0-200,1000+", "name": "priceRange", "in": "query"},
                    {"type": "number", "description": "minimum rating", "name": "rating", "in": "query"},
                    {"type": "boolean", "description": "only products in stock", "name": "inStock", "in": "query"},
                    {"type": "boolean", "description": "featured flag", "name": "featured", "in": "query"},
                    {"type": "string", "description": "price-lowtohigh | price-hightolow | title-atoz | title-ztoa", "name": "sortBy", "in": "query"},
                    {"type": "integer", "description": "page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.ListResponse"}}
                }
            },
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create product",
                "parameters": [
                    {"description": "product", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/products/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Search products",
                "parameters": [
                    {"type": "string", "description": "search term (at least 3 characters)", "name": "q", "in": "query", "required": true},
                    {"type": "string", "description": "sort order", "name": "sortBy", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.ListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/products/import": {
            "post": {
                "security": [{"BasicAuth": []}],
                "consumes": ["text/csv"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Bulk import products from CSV",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get product",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Product"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            },
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Update product (partial)",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/product.UpdateProductRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/product.Product"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            },
            "delete": {
                "security": [{"BasicAuth": []}],
                "tags": ["products"],
                "summary": "Delete product",
                "parameters": [{"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/cart/{user}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get cart",
                "parameters": [{"type": "string", "description": "user id", "name": "user", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add to cart",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "user", "in": "path", "required": true},
                    {"description": "item", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.ItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/cart/{user}/{productId}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Set cart quantity (0 removes the line)",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "user", "in": "path", "required": true},
                    {"type": "string", "description": "product id", "name": "productId", "in": "path", "required": true},
                    {"description": "quantity", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/cart.ItemRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/cart.Cart"}}}
            }
        },
        "/checkout/{user}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order from the cart",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "user", "in": "path", "required": true},
                    {"description": "delivery details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.CheckoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/orders": {
            "get": {
                "security": [{"BasicAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "parameters": [{"type": "string", "description": "only this customer's orders", "name": "customer", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/order.Order"}}}}
            }
        },
        "/orders/{id}/status": {
            "put": {
                "security": [{"BasicAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change order status",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "new status", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/orders/{id}/invoice": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Invoice of an order (GST included)",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Invoice"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a grinding slot",
                "parameters": [
                    {"description": "booking", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/booking.CreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/booking.Booking"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        },
        "/bookings/slots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Free grinding slots for a date",
                "parameters": [{"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}}
            }
        },
        "/reviews": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List reviews",
                "parameters": [
                    {"type": "string", "description": "all | positive | negative", "name": "kind", "in": "query"},
                    {"type": "string", "description": "only this product", "name": "productId", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/review.Review"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Post a review",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/review.Review"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/product.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "product.HTTPError": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "not found"}}
        },
        "product.Product": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "type": {"type": "string"},
                "brand": {"type": "string"},
                "price": {"type": "string"},
                "salePrice": {"type": "string"},
                "totalStock": {"type": "integer"},
                "rating": {"type": "number"},
                "reviews": {"type": "integer"},
                "featured": {"type": "boolean"},
                "image": {"type": "string"},
                "weight": {"type": "string"},
                "origin": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "product.ListResponse": {
            "type": "object",
            "properties": {
                "q": {"type": "string"},
                "sortBy": {"type": "string"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/product.Product"}}
            }
        },
        "product.CreateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "Cold Pressed Coconut Oil"},
                "description": {"type": "string"},
                "category": {"type": "string", "example": "Oils"},
                "type": {"type": "string", "example": "Coconut oil"},
                "brand": {"type": "string", "example": "Sri Raja"},
                "price": {"type": "string", "example": "450"},
                "salePrice": {"type": "string", "example": "380"},
                "totalStock": {"type": "integer", "example": 50},
                "featured": {"type": "boolean"},
                "image": {"type": "string"},
                "weight": {"type": "string", "example": "500ml"},
                "origin": {"type": "string", "example": "Kerala, India"}
            }
        },
        "product.UpdateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"},
                "type": {"type": "string"},
                "brand": {"type": "string"},
                "price": {"type": "string"},
                "salePrice": {"type": "string"},
                "totalStock": {"type": "integer"},
                "featured": {"type": "boolean"}
            }
        },
        "cart.ItemRequest": {
            "type": "object",
            "properties": {
                "productId": {"type": "string", "example": "1"},
                "quantity": {"type": "integer", "example": 2}
            }
        },
        "cart.Cart": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "total": {"type": "string"},
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "productId": {"type": "string"},
                            "title": {"type": "string"},
                            "image": {"type": "string"},
                            "quantity": {"type": "integer"},
                            "unitPrice": {"type": "string"},
                            "lineTotal": {"type": "string"}
                        }
                    }
                }
            }
        },
        "order.CheckoutRequest": {
            "type": "object",
            "properties": {
                "customer": {"$ref": "#/definitions/order.Customer"},
                "deliveryAddress": {"type": "string", "example": "123 Main Street, Chennai 600001"},
                "paymentMethod": {"type": "string", "enum": ["card", "upi", "cod"], "example": "upi"}
            }
        },
        "order.Invoice": {
            "type": "object",
            "properties": {
                "invoiceNumber": {"type": "string", "example": "INV-20250315-042"},
                "orderId": {"type": "string"},
                "issuedAt": {"type": "string"},
                "customer": {"$ref": "#/definitions/order.Customer"},
                "deliveryAddress": {"type": "string"},
                "paymentMethod": {"type": "string"},
                "lines": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "title": {"type": "string"},
                            "quantity": {"type": "integer"},
                            "unitPrice": {"type": "string"},
                            "amount": {"type": "string"}
                        }
                    }
                },
                "subtotal": {"type": "string"},
                "taxRate": {"type": "string"},
                "tax": {"type": "string"},
                "total": {"type": "string"}
            }
        },
        "order.UpdateStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "example": "shipped"}}
        },
        "order.Customer": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customer": {"$ref": "#/definitions/order.Customer"},
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "productId": {"type": "string"},
                            "title": {"type": "string"},
                            "quantity": {"type": "integer"},
                            "price": {"type": "string"}
                        }
                    }
                },
                "subtotal": {"type": "string"},
                "tax": {"type": "string"},
                "totalAmount": {"type": "string"},
                "paymentMethod": {"type": "string"},
                "status": {"type": "string"},
                "deliveryAddress": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "booking.CreateRequest": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "customerName": {"type": "string", "example": "Priya"},
                "phone": {"type": "string"},
                "date": {"type": "string", "example": "2025-08-15"},
                "timeSlot": {"type": "string", "example": "10:00 AM - 11:00 AM"},
                "items": {"type": "array", "items": {"type": "string"}},
                "notes": {"type": "string"}
            }
        },
        "booking.Booking": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "customerName": {"type": "string"},
                "phone": {"type": "string"},
                "date": {"type": "string"},
                "timeSlot": {"type": "string"},
                "items": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "review.Review": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "product": {
                    "type": "object",
                    "properties": {"id": {"type": "string"}, "title": {"type": "string"}}
                },
                "userName": {"type": "string"},
                "rating": {"type": "integer"},
                "comment": {"type": "string"},
                "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront Catalog API",
	Description:      "Products, cart, checkout, grinding bookings and reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
