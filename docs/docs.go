// Package docs registers the storefront OpenAPI document with swag.
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
        "/auth/registeruser": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a customer account",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/loginuser": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in and merge a guest cart",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Revoke the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/all-users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UsersResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/update-role/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Change a user's role",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "New role", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/delete-user/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Delete a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/product/all-products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "string", "description": "Category filter", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ProductsResponse"}}
                }
            }
        },
        "/product/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Distinct product categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CategoriesResponse"}}
                }
            }
        },
        "/product/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/product/addproduct": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "Product", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProductInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ProductResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/product/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Bulk import products",
                "parameters": [
                    {"description": "Products or a url", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ImportProductsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ImportProductsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/product/update-product/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Replace a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"description": "Product", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProductInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ProductResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/product/del-product/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cart/get-cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get the caller's cart",
                "parameters": [
                    {"type": "string", "description": "Guest cart id", "name": "cartId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CartResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cart/add-to-cart": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add a product to the cart",
                "parameters": [
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CartItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CartResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cart/update-qty": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Set an item's quantity",
                "parameters": [
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CartItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CartResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/cart/remove-item": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Remove an item from the cart",
                "parameters": [
                    {"description": "Item", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CartItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CartResponse"}}
                }
            }
        },
        "/cart/clear": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Empty the cart",
                "parameters": [
                    {"description": "Guest cart id", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/handler.CartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/cart/merge": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Merge a guest cart into the user's cart",
                "parameters": [
                    {"description": "Guest cart id", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CartRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CartResponse"}}
                }
            }
        },
        "/cart/guest-id": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Allocate a guest cart id",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.GuestIDResponse"}}
                }
            }
        },
        "/order/place-order": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order from explicit items",
                "parameters": [
                    {"description": "Order", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PlaceOrderInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/order/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Turn the caller's cart into an order",
                "parameters": [
                    {"description": "Shipping details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CheckoutRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/order/all-orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List every order with its customer",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OrdersWithUserResponse"}}
                }
            }
        },
        "/order/my-orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List the caller's orders",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OrdersResponse"}}
                }
            }
        },
        "/order/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Get an order",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OrderResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/order/update-status/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Change an order's status",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true},
                    {"description": "Status", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.OrderResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/order/delete/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete an order",
                "parameters": [
                    {"type": "string", "description": "Order ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        },
        "/contact/send-message": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Submit the contact form",
                "parameters": [
                    {"description": "Message", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ContactInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ContactSubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/contact/all-messages": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "List contact messages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ContactMessagesResponse"}}
                }
            }
        },
        "/contact/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Get a contact message",
                "parameters": [
                    {"type": "string", "description": "Message ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ContactMessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/contact/delete/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Delete a contact message",
                "parameters": [
                    {"type": "string", "description": "Message ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "fullname", "password"],
            "properties": {
                "email": {"type": "string"},
                "fullname": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "cartId": {"type": "string"}
            }
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/model.User"}
            }
        },
        "handler.UsersResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "users": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}
            }
        },
        "handler.UpdateRoleRequest": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "role": {"type": "string", "enum": ["customer", "admin"]}
            }
        },
        "handler.ProductResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "product": {"$ref": "#/definitions/model.Product"}
            }
        },
        "handler.ProductsResponse": {
            "type": "object",
            "properties": {
                "products": {"type": "array", "items": {"$ref": "#/definitions/model.Product"}}
            }
        },
        "handler.CategoriesResponse": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.ImportProductsRequest": {
            "type": "object",
            "properties": {
                "products": {"type": "array", "items": {"$ref": "#/definitions/service.ProductInput"}},
                "url": {"type": "string"}
            }
        },
        "handler.ImportProductsResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "message": {"type": "string"}
            }
        },
        "handler.CartItemRequest": {
            "type": "object",
            "required": ["productId"],
            "properties": {
                "cartId": {"type": "string"},
                "productId": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "handler.CartRequest": {
            "type": "object",
            "properties": {
                "cartId": {"type": "string"}
            }
        },
        "handler.CartResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "cartItems": {"type": "array", "items": {"$ref": "#/definitions/model.CartItem"}}
            }
        },
        "handler.GuestIDResponse": {
            "type": "object",
            "properties": {
                "cartId": {"type": "string"}
            }
        },
        "handler.CheckoutRequest": {
            "type": "object",
            "required": ["shippingDetails"],
            "properties": {
                "cartId": {"type": "string"},
                "shippingDetails": {"$ref": "#/definitions/model.ShippingDetails"}
            }
        },
        "handler.UpdateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["Pending", "Shipped", "Delivered", "Cancelled"]}
            }
        },
        "handler.OrderResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "order": {"$ref": "#/definitions/model.Order"}
            }
        },
        "handler.OrdersResponse": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/model.Order"}}
            }
        },
        "handler.OrdersWithUserResponse": {
            "type": "object",
            "properties": {
                "orders": {"type": "array", "items": {"$ref": "#/definitions/model.Order"}}
            }
        },
        "handler.ContactSubmitResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/model.ContactMessage"},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "handler.ContactMessageResponse": {
            "type": "object",
            "properties": {
                "message": {"$ref": "#/definitions/model.ContactMessage"}
            }
        },
        "handler.ContactMessagesResponse": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/model.ContactMessage"}}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "fullname": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "model.Product": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "availability": {"type": "string"},
                "category": {"type": "string"},
                "createdAt": {"type": "string"},
                "description": {"type": "string"},
                "images": {"$ref": "#/definitions/model.ProductImages"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "rating": {"type": "number"},
                "shortDescription": {"type": "string"},
                "specifications": {"$ref": "#/definitions/model.Specifications"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.ProductImages": {
            "type": "object",
            "properties": {
                "detailImage": {"type": "string"},
                "gallery": {"type": "array", "items": {"type": "string"}},
                "thumbnail": {"type": "string"}
            }
        },
        "model.Specifications": {
            "type": "object",
            "properties": {
                "capacity": {"type": "string"},
                "color": {"type": "string"},
                "height": {"type": "string"},
                "material": {"type": "string"},
                "weight": {"type": "string"},
                "width": {"type": "string"}
            }
        },
        "model.CartItem": {
            "type": "object",
            "properties": {
                "images": {"type": "object", "properties": {"thumbnail": {"type": "string"}}},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "productId": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "model.ShippingDetails": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "city": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "model.OrderItem": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {"type": "number"},
                "productId": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "model.Order": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/model.OrderItem"}},
                "shippingDetails": {"$ref": "#/definitions/model.ShippingDetails"},
                "status": {"type": "string"},
                "totalPrice": {"type": "number"},
                "updatedAt": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "model.ContactMessage": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "message": {"type": "string"},
                "subject": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "service.ProductInput": {
            "type": "object",
            "required": ["category", "description", "name", "shortDescription"],
            "properties": {
                "availability": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "images": {"$ref": "#/definitions/model.ProductImages"},
                "name": {"type": "string"},
                "price": {"type": "number"},
                "rating": {"type": "number"},
                "shortDescription": {"type": "string"},
                "specifications": {"$ref": "#/definitions/model.Specifications"}
            }
        },
        "service.OrderLine": {
            "type": "object",
            "required": ["productId", "quantity"],
            "properties": {
                "productId": {"type": "string"},
                "quantity": {"type": "integer"}
            }
        },
        "service.PlaceOrderInput": {
            "type": "object",
            "required": ["items", "shippingDetails"],
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/service.OrderLine"}},
                "shippingDetails": {"$ref": "#/definitions/model.ShippingDetails"},
                "totalPrice": {"type": "number"}
            }
        },
        "service.ContactInput": {
            "type": "object",
            "required": ["email", "fullName", "message", "subject"],
            "properties": {
                "email": {"type": "string"},
                "fullName": {"type": "string"},
                "message": {"type": "string"},
                "subject": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Storefront API",
	Description:      "Storefront API with catalog, guest and user carts, orders, contact messages and JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
